package board

import "testing"

func TestCoordIndexRoundTrip(t *testing.T) {
	const size = 9
	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			c := Coord{Col: col, Row: row}
			got := CoordFromIndex(c.Index(size), size)
			if got != c {
				t.Errorf("CoordFromIndex(Index(%v)) = %v, want %v", c, got, c)
			}
		}
	}
}

func TestCoordIsInside(t *testing.T) {
	cases := []struct {
		c    Coord
		size int
		want bool
	}{
		{Coord{1, 1}, 9, true},
		{Coord{9, 9}, 9, true},
		{Coord{0, 1}, 9, false},
		{Coord{1, 0}, 9, false},
		{Coord{10, 1}, 9, false},
	}
	for _, tc := range cases {
		if got := tc.c.IsInside(tc.size); got != tc.want {
			t.Errorf("%v.IsInside(%d) = %v, want %v", tc.c, tc.size, got, tc.want)
		}
	}
}

func TestGTPVertexRoundTrip(t *testing.T) {
	const size = 19
	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			c := Coord{Col: col, Row: row}
			vertex := c.ToGTP()
			if vertex[0] == 'I' {
				t.Fatalf("ToGTP produced forbidden letter I for %v", c)
			}
			got, err := FromGTP(vertex)
			if err != nil {
				t.Fatalf("FromGTP(%q) error: %v", vertex, err)
			}
			if got != c {
				t.Errorf("FromGTP(ToGTP(%v)) = %v, want %v", c, got, c)
			}
		}
	}
}

func TestNeighboursExcludeOffBoard(t *testing.T) {
	corner := Coord{1, 1}
	n := corner.Neighbours(9)
	if len(n) != 2 {
		t.Fatalf("corner neighbours = %d, want 2", len(n))
	}
}
