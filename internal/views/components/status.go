package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the last action and the size of the option pool
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	optionsInfo *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.optionsInfo = widget.NewLabel("No options loaded")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(nil, nil, nil,
		container.NewHBox(widget.NewSeparator(), sb.optionsInfo),
		sb.statusLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetOptionCount(count int) {
	if count == 0 {
		sb.optionsInfo.SetText("No options loaded")
		return
	}
	sb.optionsInfo.SetText(fmt.Sprintf("Options: %d", count))
}

func (sb *StatusBar) GetOptionInfo() string {
	return sb.optionsInfo.Text
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.optionsInfo.SetText("No options loaded")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
