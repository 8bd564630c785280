package models

import (
	"randomized-bingo/internal/board"

	"github.com/samber/lo"
)

// CellState is one cell as the view draws it.
type CellState struct {
	Position board.Position
	Text     string
	Selected bool
	Free     bool
	InBingo  bool
}

// Snapshot is an immutable copy of the board taken after a change.
type Snapshot struct {
	Cells [board.Size][board.Size]CellState
	Lines []board.Line
}

func NewSnapshot(b *board.Board) Snapshot {
	lines := b.BingoLines()
	cells := b.Cells()

	var snap Snapshot
	snap.Lines = lines
	for r := range board.Size {
		for c := range board.Size {
			pos := board.Position{Row: r, Col: c}
			cell := cells[r][c]
			snap.Cells[r][c] = CellState{
				Position: pos,
				Text:     cell.Text,
				Selected: cell.Selected,
				Free:     cell.Free,
				InBingo: lo.SomeBy(lines, func(l board.Line) bool {
					return l.Contains(pos)
				}),
			}
		}
	}
	return snap
}

func (s Snapshot) Cell(pos board.Position) CellState {
	return s.Cells[pos.Row][pos.Col]
}

func (s Snapshot) HasBingo() bool {
	return len(s.Lines) > 0
}

// SelectedCount includes the free cell.
func (s Snapshot) SelectedCount() int {
	n := 0
	for _, row := range s.Cells {
		n += lo.CountBy(row[:], func(c CellState) bool { return c.Selected })
	}
	return n
}
