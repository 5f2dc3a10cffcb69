package history

// Ledger is the append-only record of completed matches.
// Entries are never mutated; the only deletion is a full session reset.
type Ledger interface {
	Append(entry Entry) error
	List(limit int) ([]Entry, error)
	Reset() error
}
