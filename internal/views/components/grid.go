package components

import (
	"randomized-bingo/internal/board"
	"randomized-bingo/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// BoardGrid lays the cells out as the 5x5 card.
type BoardGrid struct {
	container  *fyne.Container
	cells      [board.Size][board.Size]*Cell
	tapHandler func(row, col int)
}

func NewBoardGrid(cellSize float32) *BoardGrid {
	g := &BoardGrid{}
	objects := make([]fyne.CanvasObject, 0, board.CellCount)
	for r := range board.Size {
		for c := range board.Size {
			cell := NewCell(cellSize)
			cell.OnTapped = func() {
				if g.tapHandler != nil {
					g.tapHandler(r, c)
				}
			}
			g.cells[r][c] = cell
			objects = append(objects, cell)
		}
	}
	g.container = container.NewGridWithColumns(board.Size, objects...)
	return g
}

// SetTapHandler sets the handler called with the tapped cell's position
func (g *BoardGrid) SetTapHandler(handler func(row, col int)) {
	g.tapHandler = handler
}

// SetSnapshot redraws every cell from snap.
func (g *BoardGrid) SetSnapshot(snap models.Snapshot) {
	for r := range board.Size {
		for c := range board.Size {
			g.cells[r][c].SetState(snap.Cells[r][c])
		}
	}
}

func (g *BoardGrid) Cell(row, col int) *Cell {
	return g.cells[row][col]
}

func (g *BoardGrid) GetContainer() *fyne.Container {
	return g.container
}
