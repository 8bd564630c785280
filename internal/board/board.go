// Package board holds the bingo card model: a 5x5 grid with a permanently
// selected free cell in the center, shuffle-fill from an option pool,
// selection toggling and bingo line detection.
package board

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	Size      = 5
	CellCount = Size * Size

	FreeRow = Size / 2
	FreeCol = Size / 2

	// MinOptions is the number of non-free cells a regeneration must fill.
	MinOptions = CellCount - 1

	FreeText        = "Free!"
	PlaceholderText = "Bingo!"
)

// Cell is a single square of the card.
type Cell struct {
	Text     string
	Selected bool
	Free     bool
}

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is the bingo card. It is not safe for concurrent use; the owning
// session drives it from a single goroutine.
type Board struct {
	cells [Size][Size]Cell
	rng   *rand.Rand
}

// New returns an initialized board that shuffles with rng. A nil rng gets a
// time-seeded source.
func New(rng *rand.Rand) *Board {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	b := &Board{rng: rng}
	b.Initialize()
	return b
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Initialize clears every cell to the placeholder state and marks the
// center as the free cell.
func (b *Board) Initialize() {
	for r := range Size {
		for c := range Size {
			b.cells[r][c] = Cell{Text: PlaceholderText}
		}
	}
	b.cells[FreeRow][FreeCol] = freeCell()
}

func freeCell() Cell {
	return Cell{Text: FreeText, Selected: true, Free: true}
}

// Reset unselects every non-free cell. Texts are kept.
func (b *Board) Reset() {
	for r := range Size {
		for c := range Size {
			if !b.cells[r][c].Free {
				b.cells[r][c].Selected = false
			}
		}
	}
}

// Regenerate shuffles a copy of options and deals it onto the non-free
// cells in row-major order, front to back. The board is reset first. With
// fewer than MinOptions options the board is left untouched.
func (b *Board) Regenerate(options []string) error {
	if len(options) < MinOptions {
		return fmt.Errorf("%w: need %d, got %d", ErrInsufficientOptions, MinOptions, len(options))
	}

	pool := make([]string, len(options))
	copy(pool, options)
	b.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	b.Reset()
	next := 0
	for r := range Size {
		for c := range Size {
			if b.cells[r][c].Free {
				continue
			}
			b.cells[r][c].Text = pool[next]
			next++
		}
	}
	return nil
}

// Toggle flips the selection of the cell at row, col and returns the new
// state. The free cell never changes and reports true.
func (b *Board) Toggle(row, col int) (bool, error) {
	if err := checkBounds(row, col); err != nil {
		return false, err
	}
	cell := &b.cells[row][col]
	if cell.Free {
		return true, nil
	}
	cell.Selected = !cell.Selected
	return cell.Selected, nil
}

// Cell returns a copy of the cell at row, col.
func (b *Board) Cell(row, col int) (Cell, error) {
	if err := checkBounds(row, col); err != nil {
		return Cell{}, err
	}
	return b.cells[row][col], nil
}

// Cells returns a copy of the whole grid.
func (b *Board) Cells() [Size][Size]Cell {
	return b.cells
}

func checkBounds(row, col int) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, Position{Row: row, Col: col})
	}
	return nil
}
