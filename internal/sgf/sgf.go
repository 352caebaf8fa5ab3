// Package sgf implements a minimal SGF reader: enough of the format
// for `loadsgf` to be functional, per spec.md's "deliberately out of
// scope" note for full SGF support. Only the SZ, KM, AB, and AW
// properties are understood, each taken from its first occurrence
// anywhere in the text (normally the root node); move trees,
// variations, and every other property are skipped rather than
// rejected, matching the original implementation's permissive parsing.
package sgf

import (
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tengengo/mcts/internal/board"
)

var (
	sizeProp  = regexp.MustCompile(`SZ\[(\d+)\]`)
	komiProp  = regexp.MustCompile(`KM\[(-?[0-9.]+)\]`)
	blackProp = regexp.MustCompile(`AB((?:\[[a-z]{2}\])+)`)
	whiteProp = regexp.MustCompile(`AW((?:\[[a-z]{2}\])+)`)
	pointRun  = regexp.MustCompile(`\[([a-z]{2})\]`)
)

const (
	defaultSize = 19
	defaultKomi = 6.5
)

// LoadFile reads path and builds the Game its root node's setup
// properties describe. An IO failure or empty content is an error;
// an unrecognized individual property is simply ignored, and text
// with no recognized property yields an empty default-sized game.
func LoadFile(path string) (*board.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "sgf: cannot read file")
	}
	return Parse(string(data))
}

// Parse builds a Game from raw SGF text, per the package doc's
// supported-property subset.
func Parse(content string) (*board.Game, error) {
	if len(content) == 0 {
		return nil, errors.New("sgf: empty content")
	}

	size := defaultSize
	if m := sizeProp.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			size = n
		}
	}

	komi := defaultKomi
	if m := komiProp.FindStringSubmatch(content); m != nil {
		if k, err := strconv.ParseFloat(m[1], 64); err == nil {
			komi = k
		}
	}

	game := board.NewGame(size, komi)
	b := game.Board()

	if m := blackProp.FindStringSubmatch(content); m != nil {
		placeAll(b, m[1], board.Black, size)
	}
	if m := whiteProp.FindStringSubmatch(content); m != nil {
		placeAll(b, m[1], board.White, size)
	}

	return game, nil
}

// placeAll places every SGF point in an AB/AW property's bracket run.
// SGF points are (column, row-from-top) letters a..z; row is flipped
// to this board's bottom-up GTP row numbering.
func placeAll(b *board.Board, brackets string, color board.Color, size int) {
	for _, m := range pointRun.FindAllStringSubmatch(brackets, -1) {
		point := m[1]
		col := int(point[0]-'a') + 1
		rowFromTop := int(point[1] - 'a')
		row := size - rowFromTop
		b.PlaceSetupStone(board.Coord{Col: col, Row: row}, color)
	}
}
