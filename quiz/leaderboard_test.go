package quiz

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type brokenStore struct {
	*MemoryStore
}

func (b *brokenStore) Get(key string) ([]Entry, error) {
	return nil, errors.New("corrupt")
}

func TestLeaderboardSeedsWhenMissing(t *testing.T) {
	store := NewMemoryStore()
	lb := NewLeaderboard(store, "", discard)
	got, err := lb.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(DefaultEntries()) {
		t.Fatalf("len = %d, want %d", len(got), len(DefaultEntries()))
	}
	saved, err := store.Get(DefaultLeaderboardKey)
	if err != nil {
		t.Fatalf("seed not persisted: %v", err)
	}
	if len(saved) != len(got) {
		t.Errorf("saved %d entries, want %d", len(saved), len(got))
	}
}

func TestLeaderboardReseedsWhenMalformed(t *testing.T) {
	store := &brokenStore{MemoryStore: NewMemoryStore()}
	lb := NewLeaderboard(store, "k", discard)
	got, err := lb.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != DefaultEntries()[0] {
		t.Errorf("top = %+v, want %+v", got[0], DefaultEntries()[0])
	}
}

func TestLeaderboardSubmitRanksAndTruncates(t *testing.T) {
	store := NewMemoryStore()
	lb := NewLeaderboard(store, "k", discard)
	for i := 0; i < MaxEntries+3; i++ {
		if _, _, err := lb.Submit("abc", 10*i); err != nil {
			t.Fatal(err)
		}
	}
	got, err := lb.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(got), MaxEntries)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("entries not descending at %d: %d > %d", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestLeaderboardSubmitPosition(t *testing.T) {
	store := NewMemoryStore()
	lb := NewLeaderboard(store, "k", discard)

	entries, pos, err := lb.Submit("top", 10000)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 || entries[0].Initials != "TOP" {
		t.Errorf("pos = %d top = %+v, want 0 TOP", pos, entries[0])
	}

	// Ties rank below existing holders of the score.
	_, pos, _ = lb.Submit("TIE", 10000)
	if pos != 1 {
		t.Errorf("tie pos = %d, want 1", pos)
	}
}

func TestLeaderboardSubmitBelowCut(t *testing.T) {
	store := NewMemoryStore()
	full := make([]Entry, MaxEntries)
	for i := range full {
		full[i] = Entry{"AAA", 1000}
	}
	_ = store.Set("k", full)
	lb := NewLeaderboard(store, "k", discard)
	if lb.Qualifies(5) {
		t.Error("Qualifies(5) = true on a full board")
	}
	entries, pos, err := lb.Submit("LOW", 5)
	if err != nil {
		t.Fatal(err)
	}
	if pos != -1 {
		t.Errorf("pos = %d, want -1", pos)
	}
	if len(entries) != MaxEntries {
		t.Errorf("len = %d, want %d", len(entries), MaxEntries)
	}
}

func TestNormalizeInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"abc", "ABC", false},
		{" x ", "X", false},
		{"", "", true},
		{"abcd", "", true},
		{"a1", "", true},
		{"é", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeInitials(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("NormalizeInitials(%q) err = %v, want err %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeInitials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLeaderboardSubmitRejectsInitials(t *testing.T) {
	lb := NewLeaderboard(NewMemoryStore(), "k", discard)
	if _, _, err := lb.Submit("12", 100); !errors.Is(err, ErrInvalidInitials) {
		t.Errorf("err = %v, want ErrInvalidInitials", err)
	}
}
