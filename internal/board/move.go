package board

// Move is either a Play(color, coord) or a Pass(color). Every move
// carries the color of the mover, per spec.
type Move struct {
	Color Color
	At    Coord
	IsPass bool
}

// PlayMove constructs a Play move.
func PlayMove(c Color, at Coord) Move {
	return Move{Color: c, At: at}
}

// PassMove constructs a Pass move for the given color.
func PassMove(c Color) Move {
	return Move{Color: c, IsPass: true}
}

// ToGTP renders the move's destination as GTP expects it in a
// genmove/play reply: a vertex, or "pass".
func (m Move) ToGTP() string {
	if m.IsPass {
		return "pass"
	}
	return m.At.ToGTP()
}

func (m Move) String() string {
	if m.IsPass {
		return m.Color.String() + " pass"
	}
	return m.Color.String() + " " + m.At.ToGTP()
}
