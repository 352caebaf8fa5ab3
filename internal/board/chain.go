package board

// Chain is a maximal set of same-colored, orthogonally-connected
// stones, together with its liberties.
type Chain struct {
	ChainColor     Color
	ChainCoords    []Coord
	ChainLiberties []Coord
}

// Color returns the chain's stone color.
func (c Chain) Color() Color { return c.ChainColor }

// Coords returns the chain's stones.
func (c Chain) Coords() []Coord { return c.ChainCoords }

// Liberties returns the chain's liberty points.
func (c Chain) Liberties() []Coord { return c.ChainLiberties }

// LibertyCount returns the number of liberties the chain has.
func (c Chain) LibertyCount() int { return len(c.ChainLiberties) }

// Len returns the number of stones in the chain.
func (c Chain) Len() int { return len(c.ChainCoords) }
