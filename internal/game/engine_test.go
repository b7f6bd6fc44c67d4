package game

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// fixedRand returns the queued values in order, then zeros.
type fixedRand struct{ vals []int }

func (f *fixedRand) IntN(n int) int {
	if len(f.vals) == 0 {
		return 0
	}
	v := f.vals[0]
	f.vals = f.vals[1:]
	return v % n
}

func sampleCatalog() Catalog {
	return Catalog{
		570: {ID: 570, Name: "Dota 2", Reviews: []string{
			"Amazing strategy game with incredible depth. Addictive gameplay!",
			"Deep strategic gameplay that never gets old.",
		}},
		730: {ID: 730, Name: "Counter-Strike 2", Reviews: []string{
			"Best FPS on the market. Fast-paced competitive action!",
		}},
		252490: {ID: 252490, Name: "Rust", Reviews: []string{
			"Survival at its finest. Heart-pounding gameplay!",
			"Most intense multiplayer experience ever.",
			"Brutal, unforgiving, and absolutely addictive!",
		}},
	}
}

func TestNextRoundEmptyCatalog(t *testing.T) {
	e := New(NewRand(1))
	if _, _, err := e.NextRound(); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if e.TotalRounds() != 0 {
		t.Errorf("total should stay 0, got %d", e.TotalRounds())
	}

	e.LoadCatalog(Catalog{})
	if _, _, err := e.NextRound(); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog after loading empty catalog, got %v", err)
	}
}

func TestCheckGuessBeforeRound(t *testing.T) {
	e := New(NewRand(1))
	e.LoadCatalog(sampleCatalog())
	ok, err := e.CheckGuess("Dota 2")
	if !errors.Is(err, ErrNoActiveRound) {
		t.Fatalf("expected ErrNoActiveRound, got %v", err)
	}
	if ok || e.Correct() != 0 {
		t.Errorf("guess before round must not score")
	}
}

func TestReviewBelongsToReportedGame(t *testing.T) {
	cat := sampleCatalog()
	e := New(NewRand(42))
	e.LoadCatalog(cat)

	for i := 0; i < 500; i++ {
		review, id, err := e.NextRound()
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		entry, ok := cat[id]
		if !ok {
			t.Fatalf("round %d: unknown id %d", i, id)
		}
		if !slices.Contains(entry.Reviews, review) {
			t.Fatalf("round %d: review %q not in %s", i, review, entry.Name)
		}
		cur, ok := e.Current()
		if !ok || cur.GameID != id || cur.Game != entry.Name || cur.Review != review {
			t.Fatalf("round %d: current round mismatch: %+v", i, cur)
		}
	}
	if e.TotalRounds() != 500 {
		t.Errorf("expected 500 rounds, got %d", e.TotalRounds())
	}
}

func TestSelectionCoversEveryGame(t *testing.T) {
	e := New(NewRand(7))
	e.LoadCatalog(sampleCatalog())
	seen := map[int]bool{}
	for i := 0; i < 300; i++ {
		_, id, _ := e.NextRound()
		seen[id] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all 3 games to be drawn, saw %v", seen)
	}
}

func TestSeededSessionsReplay(t *testing.T) {
	a, b := New(NewRand(99)), New(NewRand(99))
	a.LoadCatalog(sampleCatalog())
	b.LoadCatalog(sampleCatalog())
	for i := 0; i < 50; i++ {
		ra, ia, _ := a.NextRound()
		rb, ib, _ := b.NextRound()
		if ra != rb || ia != ib {
			t.Fatalf("round %d diverged: (%d %q) vs (%d %q)", i, ia, ra, ib, rb)
		}
	}
}

func TestCheckGuessNormalizes(t *testing.T) {
	tests := []struct {
		guess string
		want  bool
	}{
		{"Dota 2", true},
		{" Dota 2 ", true},
		{"dota 2", true},
		{"DOTA 2\n", true},
		{"\tdOtA 2", true},
		{"dota2", false},
		{"csgo", false},
		{"", false},
	}
	for _, tt := range tests {
		e := New(&fixedRand{})
		e.LoadCatalog(Catalog{570: sampleCatalog()[570]})
		if _, _, err := e.NextRound(); err != nil {
			t.Fatal(err)
		}
		got, err := e.CheckGuess(tt.guess)
		if err != nil {
			t.Fatalf("%q: %v", tt.guess, err)
		}
		if got != tt.want {
			t.Errorf("CheckGuess(%q) = %v, want %v", tt.guess, got, tt.want)
		}
	}
}

func TestSingleGameExample(t *testing.T) {
	e := New(NewRand(3))
	e.LoadCatalog(Catalog{570: {ID: 570, Name: "Dota 2", Reviews: []string{"Amazing strategy game..."}}})

	review, id, err := e.NextRound()
	if err != nil {
		t.Fatal(err)
	}
	if review != "Amazing strategy game..." || id != 570 {
		t.Fatalf("got (%q, %d)", review, id)
	}
	if cur, _ := e.Current(); cur.Game != "Dota 2" {
		t.Fatalf("current game = %q", cur.Game)
	}
	if ok, _ := e.CheckGuess("dota 2"); !ok {
		t.Fatal("expected correct guess")
	}
	if e.Correct() != 1 || e.TotalRounds() != 1 || e.CurrentAccuracy() != 1.0 {
		t.Fatalf("score = %+v, accuracy %v", e.Score(), e.CurrentAccuracy())
	}

	if _, _, err := e.NextRound(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := e.CheckGuess("csgo"); ok {
		t.Fatal("csgo must not match Dota 2")
	}
	if e.Correct() != 1 || e.TotalRounds() != 2 {
		t.Fatalf("score = %+v", e.Score())
	}
	if e.CurrentAccuracy() != 0.5 {
		t.Fatalf("accuracy = %v, want 0.5", e.CurrentAccuracy())
	}
}

func TestAccuracyTracksRounds(t *testing.T) {
	e := New(NewRand(11))
	if e.CurrentAccuracy() != 0 {
		t.Fatalf("accuracy with no rounds = %v", e.CurrentAccuracy())
	}
	e.LoadCatalog(sampleCatalog())

	const n = 40
	k := 0
	for i := 0; i < n; i++ {
		_, id, err := e.NextRound()
		if err != nil {
			t.Fatal(err)
		}
		guess := "nope"
		if i%3 == 0 {
			guess = sampleCatalog()[id].Name
			k++
		}
		if _, err := e.CheckGuess(guess); err != nil {
			t.Fatal(err)
		}
		if e.Correct() > e.TotalRounds() {
			t.Fatalf("correct %d exceeds total %d", e.Correct(), e.TotalRounds())
		}
	}
	want := float64(k) / float64(n)
	if math.Abs(e.CurrentAccuracy()-want) > 1e-12 {
		t.Errorf("accuracy = %v, want %v", e.CurrentAccuracy(), want)
	}
}

func TestRoundAcceptsOneGuess(t *testing.T) {
	e := New(&fixedRand{})
	e.LoadCatalog(Catalog{570: sampleCatalog()[570]})
	e.NextRound()
	if ok, err := e.CheckGuess("dota 2"); !ok || err != nil {
		t.Fatalf("first guess: %v %v", ok, err)
	}
	if _, err := e.CheckGuess("dota 2"); !errors.Is(err, ErrNoActiveRound) {
		t.Fatalf("second guess: expected ErrNoActiveRound, got %v", err)
	}
	if e.Correct() != 1 {
		t.Errorf("correct = %d, want 1", e.Correct())
	}
	// The scored round stays visible so the answer can be revealed.
	if cur, ok := e.Current(); !ok || !cur.Scored || cur.Game != "Dota 2" {
		t.Errorf("current = %+v, %v", cur, ok)
	}
}

func TestAbandon(t *testing.T) {
	e := New(&fixedRand{})
	e.LoadCatalog(Catalog{570: sampleCatalog()[570]})

	e.Abandon()
	if e.TotalRounds() != 0 {
		t.Fatalf("abandon without round changed total: %d", e.TotalRounds())
	}

	e.NextRound()
	e.CheckGuess("Dota 2")
	e.NextRound()
	e.Abandon()
	if got := e.Score(); got != (Score{Correct: 1, Total: 1}) {
		t.Fatalf("score after abandon = %+v", got)
	}
	if _, ok := e.Current(); ok {
		t.Error("abandoned round should be cleared")
	}

	// Abandoning a scored round keeps it.
	e.NextRound()
	e.CheckGuess("x")
	e.Abandon()
	if e.TotalRounds() != 2 {
		t.Errorf("total = %d, want 2", e.TotalRounds())
	}
}

func TestLoadCatalogCopies(t *testing.T) {
	cat := Catalog{570: {ID: 570, Name: "Dota 2", Reviews: []string{"Amazing strategy game with depth."}}}
	e := New(&fixedRand{})
	e.LoadCatalog(cat)
	cat[570].Reviews[0] = "mutated"
	delete(cat, 570)

	review, id, err := e.NextRound()
	if err != nil || id != 570 || review != "Amazing strategy game with depth." {
		t.Fatalf("got (%q, %d, %v)", review, id, err)
	}
}

func TestLoadCatalogReplaces(t *testing.T) {
	e := New(NewRand(5))
	e.LoadCatalog(sampleCatalog())
	e.LoadCatalog(Catalog{730: sampleCatalog()[730]})
	for i := 0; i < 20; i++ {
		if _, id, _ := e.NextRound(); id != 730 {
			t.Fatalf("got id %d after reload", id)
		}
	}
	if ids := e.Catalog().IDs(); !slices.Equal(ids, []int{730}) {
		t.Errorf("ids = %v", ids)
	}
}
