package sgf

import (
	"testing"

	"github.com/tengengo/mcts/internal/board"
)

func TestParseSizeAndKomi(t *testing.T) {
	game, err := Parse("(;FF[4]GM[1]SZ[13]KM[7.5])")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if game.Size() != 13 {
		t.Errorf("got size %d, want 13", game.Size())
	}
	if game.Komi() != 7.5 {
		t.Errorf("got komi %v, want 7.5", game.Komi())
	}
}

func TestParseDefaultsWhenPropertiesMissing(t *testing.T) {
	game, err := Parse("(;FF[4]GM[1])")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if game.Size() != defaultSize || game.Komi() != defaultKomi {
		t.Errorf("got size=%d komi=%v, want defaults %d/%v", game.Size(), game.Komi(), defaultSize, defaultKomi)
	}
}

func TestParsePlacesSetupStones(t *testing.T) {
	game, err := Parse("(;FF[4]GM[1]SZ[9]AB[aa][bb]AW[cc])")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b := game.Board()
	// "aa": col 1, row-from-top 0 -> row = size - 0 = 9.
	if got := b.At(board.Coord{Col: 1, Row: 9}); got != board.Black {
		t.Errorf("expected black at aa, got %v", got)
	}
	// "bb": col 2, row-from-top 1 -> row 8.
	if got := b.At(board.Coord{Col: 2, Row: 8}); got != board.Black {
		t.Errorf("expected black at bb, got %v", got)
	}
	// "cc": col 3, row-from-top 2 -> row 7.
	if got := b.At(board.Coord{Col: 3, Row: 7}); got != board.White {
		t.Errorf("expected white at cc, got %v", got)
	}
}

func TestLoadFileReportsErrorForMissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/does-not-exist.sgf")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
