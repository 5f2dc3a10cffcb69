package assembly

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Generate partitions the active players into live matches and a waiting
// queue for the given round.
//
// The players are shuffled with an unbiased index-swap (Fisher-Yates)
// shuffle, then split into consecutive groups of four: the first `courts`
// groups become ongoing matches on courts 1..courts, the remaining full
// groups become queue items with court labels cycling 1..courts. Players left
// over after the last full group sit this round out.
func Generate(active []Player, round, courts int, now time.Time, rng *rand.Rand) ([]Match, []QueueItem, error) {
	if len(active) < PlayersPerMatch {
		return nil, nil, ErrInsufficientPlayers
	}

	shuffled := make([]Player, len(active))
	copy(shuffled, active)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := len(shuffled) / PlayersPerMatch

	var matches []Match
	var queue []QueueItem
	for g := 0; g < groups; g++ {
		slot := shuffled[g*PlayersPerMatch : (g+1)*PlayersPerMatch]
		team1 := Team{slot[0], slot[1]}
		team2 := Team{slot[2], slot[3]}

		if g < courts {
			matches = append(matches, Match{
				ID:        uuid.New().String(),
				Court:     g + 1,
				Round:     round,
				Team1:     team1,
				Team2:     team2,
				Status:    StatusOngoing,
				StartTime: now,
			})
			continue
		}

		queue = append(queue, QueueItem{
			ID:    uuid.New().String(),
			Court: (g-courts)%courts + 1,
			Round: round,
			Team1: team1,
			Team2: team2,
		})
	}

	return matches, queue, nil
}
