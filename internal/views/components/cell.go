package components

import (
	"image/color"

	"randomized-bingo/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	UnselectedColor = color.NRGBA{R: 64, G: 64, B: 64, A: 255}
	SelectedColor   = color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	FreeColor       = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	TextColor       = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	BorderColor     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	BingoColor      = color.NRGBA{R: 255, G: 200, B: 0, A: 255}
)

const (
	borderWidth      = 1
	bingoBorderWidth = 6

	// cellTextColor is resolved by cellTheme to TextColor.
	cellTextColor fyne.ThemeColorName = "bingoCellText"
)

// cellTheme adds the cell text colour to the default theme.
type cellTheme struct {
	fyne.Theme
}

func (t cellTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == cellTextColor {
		return TextColor
	}
	return t.Theme.Color(name, variant)
}

// Cell draws one square of the card and reports taps.
type Cell struct {
	widget.BaseWidget

	OnTapped func()

	state      models.CellState
	edge       float32
	background *canvas.Rectangle
	text       *widget.RichText
}

func NewCell(edge float32) *Cell {
	c := &Cell{
		edge:       edge,
		background: canvas.NewRectangle(UnselectedColor),
		text:       widget.NewRichText(),
	}
	c.text.Wrapping = fyne.TextWrapWord
	c.ExtendBaseWidget(c)
	c.applyState()
	return c
}

func (c *Cell) CreateRenderer() fyne.WidgetRenderer {
	label := container.NewThemeOverride(c.text, cellTheme{Theme: theme.DefaultTheme()})
	return &cellRenderer{
		cell: c,
		root: container.NewStack(
			c.background,
			container.NewPadded(container.NewVBox(layout.NewSpacer(), label, layout.NewSpacer())),
		),
	}
}

func (c *Cell) MinSize() fyne.Size {
	return fyne.NewSize(c.edge, c.edge)
}

func (c *Cell) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

// SetState redraws the cell from state.
func (c *Cell) SetState(state models.CellState) {
	c.state = state
	c.applyState()
	c.Refresh()
}

func (c *Cell) State() models.CellState {
	return c.state
}

// Fill reports the background colour currently drawn.
func (c *Cell) Fill() color.Color {
	return c.background.FillColor
}

// Border reports the outline colour and width currently drawn.
func (c *Cell) Border() (color.Color, float32) {
	return c.background.StrokeColor, c.background.StrokeWidth
}

// Text returns the label text currently drawn.
func (c *Cell) Text() string {
	return c.text.String()
}

func (c *Cell) applyState() {
	switch {
	case c.state.Free:
		c.background.FillColor = FreeColor
	case c.state.Selected:
		c.background.FillColor = SelectedColor
	default:
		c.background.FillColor = UnselectedColor
	}

	if c.state.InBingo {
		c.background.StrokeColor = BingoColor
		c.background.StrokeWidth = bingoBorderWidth
	} else {
		c.background.StrokeColor = BorderColor
		c.background.StrokeWidth = borderWidth
	}

	c.text.Segments = []widget.RichTextSegment{&widget.TextSegment{
		Text: c.state.Text,
		Style: widget.RichTextStyle{
			Alignment: fyne.TextAlignCenter,
			ColorName: cellTextColor,
			SizeName:  theme.SizeNameSubHeadingText,
			TextStyle: fyne.TextStyle{Bold: true},
		},
	}}
}

type cellRenderer struct {
	cell *Cell
	root *fyne.Container
}

func (r *cellRenderer) Layout(size fyne.Size) {
	r.root.Resize(size)
}

func (r *cellRenderer) MinSize() fyne.Size {
	return r.cell.MinSize()
}

// Refresh on the stack re-lays out the wrapped text and redraws every child.
func (r *cellRenderer) Refresh() {
	r.root.Refresh()
}

func (r *cellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.root}
}

func (r *cellRenderer) Destroy() {}
