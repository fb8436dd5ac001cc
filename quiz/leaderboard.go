package quiz

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// MaxEntries is how many scores the leaderboard keeps.
const MaxEntries = 10

// DefaultLeaderboardKey is the storage key the leaderboard lives under.
const DefaultLeaderboardKey = "mist_leaderboard"

var (
	// ErrNotFound is returned by Storage.Get when the key has never been
	// written.
	ErrNotFound = errors.New("quiz: key not found")
	// ErrInvalidInitials is returned by Submit for initials that are not
	// one to three letters.
	ErrInvalidInitials = errors.New("quiz: initials must be 1-3 letters")
)

// Entry is one leaderboard row.
type Entry struct {
	Initials string `csv:"initials" yaml:"initials"`
	Score    int    `csv:"score" yaml:"score"`
}

// Storage is the key/value persistence the leaderboard is written to. Get
// returns ErrNotFound for a missing key; any other error means the stored
// data is unusable.
type Storage interface {
	Get(key string) ([]Entry, error)
	Set(key string, entries []Entry) error
}

// DefaultEntries seeds an empty leaderboard.
func DefaultEntries() []Entry {
	return []Entry{
		{"FOG", 500},
		{"CSR", 400},
		{"PTH", 300},
		{"CAL", 200},
		{"MST", 100},
	}
}

// Leaderboard keeps the top MaxEntries scores in a Storage.
type Leaderboard struct {
	store  Storage
	key    string
	seed   []Entry
	logger *slog.Logger
}

// NewLeaderboard creates a leaderboard over store. An empty key uses
// DefaultLeaderboardKey; a nil logger uses slog.Default().
func NewLeaderboard(store Storage, key string, logger *slog.Logger) *Leaderboard {
	if key == "" {
		key = DefaultLeaderboardKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Leaderboard{store: store, key: key, seed: DefaultEntries(), logger: logger}
}

// Entries returns the ranked entries. A missing or unreadable record is
// replaced by the seed entries, which are written back.
func (l *Leaderboard) Entries() ([]Entry, error) {
	entries, err := l.store.Get(l.key)
	switch {
	case err == nil:
		return rank(entries), nil
	case errors.Is(err, ErrNotFound):
		l.logger.Info("leaderboard_seeded", "key", l.key)
	default:
		l.logger.Warn("leaderboard_reseeded", "key", l.key, "error", err)
	}
	seeded := rank(slices.Clone(l.seed))
	if err := l.store.Set(l.key, seeded); err != nil {
		return seeded, fmt.Errorf("seeding leaderboard: %w", err)
	}
	return seeded, nil
}

// Submit inserts a score, keeps the top MaxEntries, and persists the
// result. It returns the new ranking and the 0-based position of the new
// entry, or -1 when it did not make the cut.
func (l *Leaderboard) Submit(initials string, score int) ([]Entry, int, error) {
	initials, err := NormalizeInitials(initials)
	if err != nil {
		return nil, -1, err
	}
	entries, err := l.Entries()
	if err != nil {
		return entries, -1, err
	}
	entries, pos := insert(entries, Entry{Initials: initials, Score: score})
	if err := l.store.Set(l.key, entries); err != nil {
		return entries, pos, fmt.Errorf("saving leaderboard: %w", err)
	}
	return entries, pos, nil
}

// Qualifies reports whether score would make the board.
func (l *Leaderboard) Qualifies(score int) bool {
	entries, _ := l.Entries()
	return len(entries) < MaxEntries || score > entries[len(entries)-1].Score
}

// NormalizeInitials trims and upper-cases s and checks it is 1-3 ASCII
// letters.
func NormalizeInitials(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 0 || len(s) > 3 {
		return "", ErrInvalidInitials
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidInitials
		}
	}
	return s, nil
}

// rank sorts by score descending, keeping insertion order among equal
// scores, and truncates to MaxEntries.
func rank(entries []Entry) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// insert places e after every entry with a score >= e.Score, so earlier
// holders of a tied score keep their rank.
func insert(entries []Entry, e Entry) ([]Entry, int) {
	pos := len(entries)
	for i, x := range entries {
		if e.Score > x.Score {
			pos = i
			break
		}
	}
	entries = slices.Insert(entries, pos, e)
	entries = rank(entries)
	if pos >= len(entries) {
		pos = -1
	}
	return entries, pos
}
