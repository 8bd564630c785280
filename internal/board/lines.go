package board

import (
	"fmt"

	"github.com/samber/lo"
)

// LineKind identifies the orientation of a winning line.
type LineKind int

const (
	RowLine LineKind = iota
	ColumnLine
	DiagonalLine     // top-left to bottom-right
	AntiDiagonalLine // top-right to bottom-left
)

func (k LineKind) String() string {
	switch k {
	case RowLine:
		return "row"
	case ColumnLine:
		return "column"
	case DiagonalLine:
		return "diagonal"
	case AntiDiagonalLine:
		return "anti-diagonal"
	default:
		return "unknown"
	}
}

// Line is one of the winning lines of the card. Index is the row or column
// number and is zero for the diagonals.
type Line struct {
	Kind  LineKind
	Index int
	Cells [Size]Position
}

func (l Line) String() string {
	if l.Kind == RowLine || l.Kind == ColumnLine {
		return fmt.Sprintf("%s %d", l.Kind, l.Index)
	}
	return l.Kind.String()
}

// Contains reports whether p lies on the line.
func (l Line) Contains(p Position) bool {
	return lo.Contains(l.Cells[:], p)
}

var allLines = buildLines()

func buildLines() []Line {
	lines := make([]Line, 0, 2*Size+2)
	for i := range Size {
		line := Line{Kind: RowLine, Index: i}
		for c := range Size {
			line.Cells[c] = Position{Row: i, Col: c}
		}
		lines = append(lines, line)
	}
	for i := range Size {
		line := Line{Kind: ColumnLine, Index: i}
		for r := range Size {
			line.Cells[r] = Position{Row: r, Col: i}
		}
		lines = append(lines, line)
	}
	diag := Line{Kind: DiagonalLine}
	anti := Line{Kind: AntiDiagonalLine}
	for i := range Size {
		diag.Cells[i] = Position{Row: i, Col: i}
		anti.Cells[i] = Position{Row: i, Col: Size - 1 - i}
	}
	return append(lines, diag, anti)
}

// Lines returns the 12 winning lines: rows, then columns, then the two
// diagonals.
func Lines() []Line {
	return lo.Map(allLines, func(l Line, _ int) Line { return l })
}

// BingoLines scans every line against the current grid and returns those
// whose five cells are all selected, in Lines order. Nothing is cached.
func (b *Board) BingoLines() []Line {
	return lo.Filter(allLines, func(l Line, _ int) bool {
		return lo.EveryBy(l.Cells[:], func(p Position) bool {
			return b.cells[p.Row][p.Col].Selected
		})
	})
}
