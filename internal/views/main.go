package views

import (
	"io"
	"path/filepath"

	"randomized-bingo/internal/models"
	"randomized-bingo/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
)

const (
	OptionsExtension = ".txt"
	GameExtension    = ".bng"
	defaultGameName  = "game" + GameExtension
)

// MainView is the game window: the card, an action bar, the Action menu
// and a status bar.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	grid          *components.BoardGrid
	statusBar     *components.StatusBar
	baseTitle     string
	saveName      string

	// Event handlers - connected to controller
	loadOptionsHandler func(io.ReadCloser, string)
	saveGameHandler    func(io.WriteCloser, string)
	loadGameHandler    func(io.ReadCloser, string)
	regenerateHandler  func()
	resetHandler       func()
	cellTappedHandler  func(int, int)
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window, cellSize float32) *MainView {
	view := &MainView{
		window:    window,
		baseTitle: window.Title(),
		saveName:  defaultGameName,
	}

	view.initializeComponents(cellSize)
	view.buildLayout()
	view.setupEventHandlers()
	view.setupMenus()

	return view
}

func (mv *MainView) initializeComponents(cellSize float32) {
	mv.toolbar = components.NewToolbar()
	mv.grid = components.NewBoardGrid(cellSize)
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.grid.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetLoadOptionsHandler(mv.showLoadOptionsDialog)
	mv.toolbar.SetSaveGameHandler(mv.showSaveGameDialog)
	mv.toolbar.SetLoadGameHandler(mv.showLoadGameDialog)
	mv.toolbar.SetRegenerateHandler(mv.regenerate)
	mv.toolbar.SetResetHandler(mv.reset)

	mv.grid.SetTapHandler(func(row, col int) {
		if mv.cellTappedHandler != nil {
			mv.cellTappedHandler(row, col)
		}
	})
}

type menuAction struct {
	label  string
	key    fyne.KeyName
	action func()
}

func (mv *MainView) menuActions() []menuAction {
	return []menuAction{
		{"Load Opts...", fyne.KeyO, mv.showLoadOptionsDialog},
		{"Save Game...", fyne.KeyS, mv.showSaveGameDialog},
		{"Load Game...", fyne.KeyL, mv.showLoadGameDialog},
		{"Regenerate", fyne.KeyG, mv.regenerate},
		{"Reset", fyne.KeyR, mv.reset},
	}
}

// setupMenus builds the Action menu and binds each item's shortcut on the
// window canvas so the keys work without opening the menu.
func (mv *MainView) setupMenus() {
	items := make([]*fyne.MenuItem, 0, 5)
	for _, a := range mv.menuActions() {
		shortcut := &desktop.CustomShortcut{KeyName: a.key, Modifier: fyne.KeyModifierShortcutDefault}
		item := fyne.NewMenuItem(a.label, a.action)
		item.Shortcut = shortcut
		items = append(items, item)

		action := a.action
		mv.window.Canvas().AddShortcut(shortcut, func(fyne.Shortcut) { action() })
	}

	mv.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Action", items...)))
}

// Event handler setters - called by controller

func (mv *MainView) SetLoadOptionsHandler(handler func(io.ReadCloser, string)) {
	mv.loadOptionsHandler = handler
}

func (mv *MainView) SetSaveGameHandler(handler func(io.WriteCloser, string)) {
	mv.saveGameHandler = handler
}

func (mv *MainView) SetLoadGameHandler(handler func(io.ReadCloser, string)) {
	mv.loadGameHandler = handler
}

func (mv *MainView) SetRegenerateHandler(handler func()) {
	mv.regenerateHandler = handler
}

func (mv *MainView) SetResetHandler(handler func()) {
	mv.resetHandler = handler
}

func (mv *MainView) SetCellTappedHandler(handler func(int, int)) {
	mv.cellTappedHandler = handler
}

func (mv *MainView) regenerate() {
	if mv.regenerateHandler != nil {
		mv.regenerateHandler()
	}
}

func (mv *MainView) reset() {
	if mv.resetHandler != nil {
		mv.resetHandler()
	}
}

func (mv *MainView) showLoadOptionsDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("File error", err)
			return
		}
		if reader == nil || mv.loadOptionsHandler == nil {
			closeIfOpen(reader)
			return
		}
		mv.loadOptionsHandler(reader, reader.URI().Name())
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{OptionsExtension}))
	d.Show()
}

func (mv *MainView) showSaveGameDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("File error", err)
			return
		}
		if writer == nil || mv.saveGameHandler == nil {
			closeIfOpen(writer)
			return
		}
		mv.saveGameHandler(writer, writer.URI().Name())
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{GameExtension}))
	d.SetFileName(mv.saveName)
	d.Show()
}

func (mv *MainView) showLoadGameDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("File error", err)
			return
		}
		if reader == nil || mv.loadGameHandler == nil {
			closeIfOpen(reader)
			return
		}
		mv.loadGameHandler(reader, reader.URI().Name())
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{GameExtension}))
	d.Show()
}

func closeIfOpen(c io.Closer) {
	if c != nil {
		c.Close()
	}
}

// UI update methods - called by controller

// Render redraws the card from snap.
func (mv *MainView) Render(snap models.Snapshot) {
	fyne.Do(func() {
		mv.grid.SetSnapshot(snap)
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

func (mv *MainView) SetOptionCount(count int) {
	fyne.Do(func() {
		mv.statusBar.SetOptionCount(count)
		mv.toolbar.SetOptionCount(count)
	})
}

// SetSessionInfo puts the option list in the window title and offers the
// current game's name when saving.
func (mv *MainView) SetSessionInfo(optionsSource, gameName string) {
	mv.saveName = saveFileName(gameName)
	title := windowTitle(mv.baseTitle, optionsSource)
	fyne.Do(func() {
		mv.window.SetTitle(title)
	})
}

func windowTitle(base, optionsSource string) string {
	if optionsSource == "" {
		return base
	}
	return base + " - " + filepath.Base(optionsSource)
}

func saveFileName(gameName string) string {
	if gameName == "" {
		return defaultGameName
	}
	name := filepath.Base(gameName)
	if filepath.Ext(name) != GameExtension {
		name += GameExtension
	}
	return name
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowInformation(title, err.Error(), mv.window)
	})
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// GetContainer returns the main container
func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}

func (mv *MainView) Grid() *components.BoardGrid {
	return mv.grid
}

func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}

func (mv *MainView) Toolbar() *components.Toolbar {
	return mv.toolbar
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}
