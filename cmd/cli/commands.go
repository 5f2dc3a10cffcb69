package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	dryRun       bool
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of entries to return (0 for all)")
	submitCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the result notification instead of sending it")
	notifyLeaderboardCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the leaderboard notification instead of sending it")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(removePlayerCmd)
	rootCmd.AddCommand(togglePlayerCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(notifyLeaderboardCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players on the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player to the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest("POST", "/players", map[string]string{"name": args[0]})
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove <playerID>",
	Short: "Remove a player from the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest("DELETE", "/players?id="+url.QueryEscape(args[0]), nil)
	},
}

var togglePlayerCmd = &cobra.Command{
	Use:   "toggle <playerID>",
	Short: "Toggle a player between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest("POST", "/players/toggle?id="+url.QueryEscape(args[0]), nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draw the active roster into matches and a waiting queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest("POST", "/generate", nil)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the live matches, queue and round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/state")
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <matchID> <team> <score>",
	Short: "Set one team's score on an ongoing match",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		team, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("team must be 1 or 2: %w", err)
		}
		score, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("score must be an integer: %w", err)
		}
		return performJSONRequest("POST", "/score", map[string]any{
			"match_id": args[0],
			"team":     team,
			"score":    score,
		})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <matchID>",
	Short: "Finalize an ongoing match and record the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/submit"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performJSONRequest("POST", endpoint, map[string]string{"match_id": args[0]})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the player standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed matches, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/history"
		if historyLimit > 0 {
			endpoint += "?limit=" + strconv.Itoa(historyLimit)
		}
		return performGetRequest(endpoint)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard all live matches and queued items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest("POST", "/clear", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the session: roster, history and live state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest("POST", "/reset", nil)
	},
}

var notifyLeaderboardCmd = &cobra.Command{
	Use:   "notify-leaderboard",
	Short: "Push the current leaderboard to the notification channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/notify-leaderboard"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performJSONRequest("POST", endpoint, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performJSONRequest(method, endpoint string, body any) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
