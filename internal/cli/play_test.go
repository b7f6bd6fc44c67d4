package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/steamguess/internal/game"
)

func singleGame() *game.Engine {
	e := game.New(game.NewRand(1))
	e.LoadCatalog(game.Catalog{570: {ID: 570, Name: "Dota 2", Reviews: []string{"Amazing strategy game with incredible depth."}}})
	return e
}

func TestPlayScoresAndQuits(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(" dota 2 \ncsgo\nDOTA 2\nQuit\n")

	score, err := Play(in, &out, singleGame())
	if err != nil {
		t.Fatal(err)
	}
	if score != (game.Score{Correct: 2, Total: 3}) {
		t.Fatalf("score = %+v", score)
	}

	text := out.String()
	for _, want := range []string{
		"STEAM GAME GUESSER",
		`Review: "Amazing strategy game with incredible depth."`,
		"✓ Correct! It's Dota 2!",
		"✗ Wrong! The game was: Dota 2",
		"Score: 1/1",
		"Score: 1/2",
		"Score: 2/3",
		"Final Score: 2/3",
		"Accuracy: 66.7%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n%s", want, text)
		}
	}
}

func TestPlayQuitImmediately(t *testing.T) {
	var out bytes.Buffer
	score, err := Play(strings.NewReader("QUIT\n"), &out, singleGame())
	if err != nil {
		t.Fatal(err)
	}
	if score.Total != 0 || score.Correct != 0 {
		t.Fatalf("score = %+v", score)
	}
	if !strings.Contains(out.String(), "Final Score: 0/0") || !strings.Contains(out.String(), "Accuracy: 0.0%") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
}

func TestPlayEndOfInput(t *testing.T) {
	var out bytes.Buffer
	score, err := Play(strings.NewReader("dota 2"), &out, singleGame())
	if err != nil {
		t.Fatal(err)
	}
	if score != (game.Score{Correct: 1, Total: 1}) {
		t.Fatalf("score = %+v", score)
	}
}

func TestPlayEmptyCatalog(t *testing.T) {
	var out bytes.Buffer
	_, err := Play(strings.NewReader("anything\n"), &out, game.New(game.NewRand(1)))
	if !errors.Is(err, game.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	var out bytes.Buffer
	Summary(&out, game.Score{Correct: 1, Total: 4})
	if !strings.Contains(out.String(), "Final Score: 1/4") || !strings.Contains(out.String(), "Accuracy: 25.0%") {
		t.Errorf("summary = %s", out.String())
	}
}
