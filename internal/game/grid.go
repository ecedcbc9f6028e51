package game

import "fmt"

// Grid is the fixed (col,row) placement store. Each cell holds at most one
// unit id; 0 means empty.
type Grid struct {
	cols  int
	rows  int
	cells []int
}

// NewGrid creates an empty cols x rows grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{cols: cols, rows: rows, cells: make([]int, cols*rows)}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (col,row) is a valid cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g *Grid) index(col, row int) (int, error) {
	if !g.InBounds(col, row) {
		return 0, fmt.Errorf("(%d,%d): %w", col, row, ErrOutOfBounds)
	}
	return row*g.cols + col, nil
}

// Place stores id at (col,row).
func (g *Grid) Place(col, row, id int) error {
	i, err := g.index(col, row)
	if err != nil {
		return err
	}
	if g.cells[i] != 0 {
		return fmt.Errorf("(%d,%d) holds unit %d: %w", col, row, g.cells[i], ErrCellOccupied)
	}
	g.cells[i] = id
	return nil
}

// Remove clears (col,row). Removing an empty cell is not an error.
func (g *Grid) Remove(col, row int) error {
	i, err := g.index(col, row)
	if err != nil {
		return err
	}
	g.cells[i] = 0
	return nil
}

// At returns the unit id at (col,row) and whether the cell is occupied.
func (g *Grid) At(col, row int) (int, bool, error) {
	i, err := g.index(col, row)
	if err != nil {
		return 0, false, err
	}
	return g.cells[i], g.cells[i] != 0, nil
}

// Occupied counts occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, id := range g.cells {
		if id != 0 {
			n++
		}
	}
	return n
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}
