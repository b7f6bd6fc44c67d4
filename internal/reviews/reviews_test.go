package reviews

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/robalobadob/steamguess/internal/game"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("load embedded catalog: %v", err)
	}
	games, revs := Stats(c)
	if games != 8 {
		t.Errorf("expected 8 games, got %d", games)
	}
	if revs != 37 {
		t.Errorf("expected 37 reviews, got %d", revs)
	}
	if c[570].Name != "Dota 2" || c[730].Name != "Counter-Strike 2" {
		t.Errorf("unexpected names: %q %q", c[570].Name, c[730].Name)
	}
	if !slices.Equal(c.IDs(), []int{570, 730, 109600, 252490, 271590, 578080, 1091500, 1672970}) {
		t.Errorf("ids = %v", c.IDs())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	doc := `[{"id": 440, "name": "Team Fortress 2", "reviews": ["Hats, hats and more hats. Still great fun."]}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 1 || c[440].Name != "Team Fortress 2" {
		t.Fatalf("got %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseRejects(t *testing.T) {
	long := "A review that is comfortably long enough."
	tests := []struct {
		name string
		doc  string
	}{
		{"bad json", `{`},
		{"duplicate", `[{"id":1,"name":"A","reviews":["` + long + `"]},{"id":1,"name":"B","reviews":["` + long + `"]}]`},
		{"zero id", `[{"id":0,"name":"A","reviews":["` + long + `"]}]`},
		{"no name", `[{"id":1,"name":"  ","reviews":["` + long + `"]}]`},
		{"no reviews", `[{"id":1,"name":"A","reviews":[]}]`},
		{"short review", `[{"id":1,"name":"A","reviews":["too short"]}]`},
		{"exactly twenty", `[{"id":1,"name":"A","reviews":["` + strings.Repeat("x", 20) + `"]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidationErrorType(t *testing.T) {
	err := ValidateEntry(game.GameEntry{ID: 9, Name: "X", Reviews: []string{"short"}})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.GameID != 9 {
		t.Errorf("game id = %d", ve.GameID)
	}
}

func TestNormalize(t *testing.T) {
	in := []string{
		"  short  ",
		"   This one is long enough to keep.   ",
		"",
		strings.Repeat("y", 21),
		"Another review that passes the filter.",
	}
	got := Normalize(in, 0)
	want := []string{"This one is long enough to keep.", strings.Repeat("y", 21), "Another review that passes the filter."}
	if !slices.Equal(got, want) {
		t.Fatalf("Normalize = %q", got)
	}
	if got := Normalize(in, 2); len(got) != 2 {
		t.Fatalf("limit ignored: %q", got)
	}
}

func TestEntriesOrdered(t *testing.T) {
	c, _ := Default()
	es := Entries(c)
	for i := 1; i < len(es); i++ {
		if es[i-1].ID >= es[i].ID {
			t.Fatalf("entries out of order at %d", i)
		}
	}
}
