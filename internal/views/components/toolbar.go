package components

import (
	"randomized-bingo/internal/board"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar mirrors the Action menu as buttons
type Toolbar struct {
	container        *fyne.Container
	loadOptsButton   *widget.Button
	saveButton       *widget.Button
	loadGameButton   *widget.Button
	regenerateButton *widget.Button
	resetButton      *widget.Button

	loadOptionsHandler func()
	saveGameHandler    func()
	loadGameHandler    func()
	regenerateHandler  func()
	resetHandler       func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.createComponents()
	t.buildLayout()
	return t
}

func (t *Toolbar) createComponents() {
	t.loadOptsButton = widget.NewButtonWithIcon("Load Opts", theme.FolderOpenIcon(), func() { call(t.loadOptionsHandler) })
	t.loadOptsButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save Game", theme.DocumentSaveIcon(), func() { call(t.saveGameHandler) })
	t.loadGameButton = widget.NewButtonWithIcon("Load Game", theme.FileIcon(), func() { call(t.loadGameHandler) })

	t.regenerateButton = widget.NewButtonWithIcon("Regenerate", theme.ViewRefreshIcon(), func() { call(t.regenerateHandler) })
	t.regenerateButton.Disable()

	t.resetButton = widget.NewButtonWithIcon("Reset", theme.ContentClearIcon(), func() { call(t.resetHandler) })
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.loadOptsButton,
		widget.NewSeparator(),
		t.saveButton,
		t.loadGameButton,
		widget.NewSeparator(),
		t.regenerateButton,
		t.resetButton,
	)
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (t *Toolbar) SetLoadOptionsHandler(handler func()) { t.loadOptionsHandler = handler }
func (t *Toolbar) SetSaveGameHandler(handler func())    { t.saveGameHandler = handler }
func (t *Toolbar) SetLoadGameHandler(handler func())    { t.loadGameHandler = handler }
func (t *Toolbar) SetRegenerateHandler(handler func())  { t.regenerateHandler = handler }
func (t *Toolbar) SetResetHandler(handler func())       { t.resetHandler = handler }

// SetOptionCount enables Regenerate once the pool can fill a card.
func (t *Toolbar) SetOptionCount(count int) {
	if count >= board.MinOptions {
		t.regenerateButton.Enable()
	} else {
		t.regenerateButton.Disable()
	}
}

func (t *Toolbar) RegenerateEnabled() bool {
	return !t.regenerateButton.Disabled()
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
