package gtp

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/tengengo/mcts/internal/board"
)

var (
	blackStone = termenv.String("X").Foreground(termenv.ANSIBrightBlack).Bold().String()
	whiteStone = termenv.String("O").Foreground(termenv.ANSIBrightWhite).Bold().String()
	emptyPoint = termenv.String(".").Faint().String()
)

// renderBoard draws the board the way showboard reports it: a column
// letter header (skipping 'I', per GTP), rows numbered top (largest)
// to bottom (1), styled stones when the terminal supports color.
func renderBoard(b *board.Board) string {
	size := b.Size()
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 1; col <= size; col++ {
		letter := board.Coord{Col: col, Row: 1}.ToGTP()[0]
		fmt.Fprintf(&sb, " %c", letter)
	}
	sb.WriteByte('\n')

	for row := size; row >= 1; row-- {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 1; col <= size; col++ {
			c := board.Coord{Col: col, Row: row}
			switch b.At(c) {
			case board.Black:
				sb.WriteString(" " + blackStone)
			case board.White:
				sb.WriteString(" " + whiteStone)
			default:
				sb.WriteString(" " + emptyPoint)
			}
		}
		fmt.Fprintf(&sb, " %d\n", row)
	}

	return sb.String()
}
