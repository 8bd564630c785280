package controllers

import (
	"errors"
	"fmt"
	"io"

	"randomized-bingo/internal/board"
	"randomized-bingo/internal/events"
	"randomized-bingo/internal/logger"
	"randomized-bingo/internal/models"
	"randomized-bingo/internal/options"
	"randomized-bingo/internal/services"
)

// View is what the controller needs from the window. Readers and writers
// handed to the handlers belong to the controller, which closes them.
type View interface {
	SetLoadOptionsHandler(handler func(r io.ReadCloser, source string))
	SetSaveGameHandler(handler func(w io.WriteCloser, target string))
	SetLoadGameHandler(handler func(r io.ReadCloser, source string))
	SetRegenerateHandler(handler func())
	SetResetHandler(handler func())
	SetCellTappedHandler(handler func(row, col int))

	Render(snap models.Snapshot)
	UpdateStatus(message string)
	SetOptionCount(count int)
	ShowError(title string, err error)

	// SetSessionInfo names the loaded option list and the game file in use;
	// either may be empty.
	SetSessionInfo(optionsSource, gameName string)
}

// MainController binds view actions to the game service and re-renders
// whenever the board changes.
type MainController struct {
	gameService *services.GameService
	bus         *events.Bus
	logger      logger.Logger

	mainView      View
	subscriptions []string

	startupOptions string
}

func NewMainController(gameService *services.GameService, bus *events.Bus, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &MainController{
		gameService: gameService,
		bus:         bus,
		logger:      log,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

// SetStartupOptions names an option list to load in Start.
func (mc *MainController) SetStartupOptions(path string) {
	mc.startupOptions = path
}

// Start subscribes to board changes, draws the initial card and loads the
// startup option list if one was configured.
func (mc *MainController) Start() {
	mc.subscriptions = append(mc.subscriptions,
		mc.bus.Subscribe(events.BoardChanged, mc.onBoardChanged),
		mc.bus.Subscribe(events.OptionsLoaded, mc.onOptionsLoaded),
		mc.bus.Subscribe(events.GameSaved, mc.onGameSaved),
	)

	if mc.mainView != nil {
		mc.mainView.Render(mc.gameService.Snapshot())
		mc.mainView.SetOptionCount(mc.gameService.OptionCount())
		mc.mainView.UpdateStatus("Ready")
	}

	if mc.startupOptions != "" {
		if err := mc.gameService.LoadOptions(mc.startupOptions); err != nil {
			mc.handleError(err)
		}
	}
}

func (mc *MainController) LoadOptions(r io.ReadCloser, source string) {
	err := mc.gameService.LoadOptionsFrom(r, source)
	mc.closeInput(r, source)
	if err != nil {
		mc.handleError(err)
	}
}

func (mc *MainController) SaveGame(w io.WriteCloser, target string) {
	err := mc.gameService.SaveGameTo(w, target)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: close %s: %w", services.ErrIOFailure, target, cerr)
	}
	if err != nil {
		mc.handleError(err)
	}
}

func (mc *MainController) LoadGame(r io.ReadCloser, source string) {
	err := mc.gameService.LoadGameFrom(r, source)
	mc.closeInput(r, source)
	if err != nil {
		mc.handleError(err)
		return
	}
	mc.refreshSession()
}

func (mc *MainController) Regenerate() {
	if err := mc.gameService.Regenerate(); err != nil {
		mc.handleError(err)
		return
	}
	mc.refreshStatus()
}

func (mc *MainController) Reset() {
	mc.gameService.Reset()
	mc.refreshStatus()
}

func (mc *MainController) ClickCell(row, col int) {
	if _, err := mc.gameService.ClickCell(row, col); err != nil {
		mc.handleError(err)
		return
	}
	mc.refreshStatus()
}

// closeInput closes a reader whose content has been read in full. A close
// failure there cannot affect what was loaded, so it is logged, not shown.
func (mc *MainController) closeInput(r io.Closer, source string) {
	if err := r.Close(); err != nil {
		mc.logger.Warning("MainController", "closing input failed", map[string]interface{}{
			"source": source,
			"error":  err.Error(),
		})
	}
}

// setupViewEventHandlers connects view events to controller methods
func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetLoadOptionsHandler(mc.LoadOptions)
	mc.mainView.SetSaveGameHandler(mc.SaveGame)
	mc.mainView.SetLoadGameHandler(mc.LoadGame)
	mc.mainView.SetRegenerateHandler(mc.Regenerate)
	mc.mainView.SetResetHandler(mc.Reset)
	mc.mainView.SetCellTappedHandler(mc.ClickCell)
}

func (mc *MainController) onBoardChanged(e events.Event) {
	snap, ok := e.Data["snapshot"].(models.Snapshot)
	if !ok {
		snap = mc.gameService.Snapshot()
	}
	if mc.mainView != nil {
		mc.mainView.Render(snap)
	}
}

func (mc *MainController) onOptionsLoaded(events.Event) {
	if mc.mainView != nil {
		mc.mainView.SetOptionCount(mc.gameService.OptionCount())
	}
	mc.refreshSession()
}

func (mc *MainController) onGameSaved(events.Event) {
	mc.refreshSession()
}

// refreshStatus describes the last successful action on the status line.
func (mc *MainController) refreshStatus() {
	if mc.mainView == nil {
		return
	}
	last, ok := mc.gameService.Session().LastAction()
	if !ok {
		return
	}
	mc.mainView.UpdateStatus(StatusText(last, mc.gameService.Snapshot(), mc.gameService.OptionCount()))
}

func (mc *MainController) refreshSession() {
	if mc.mainView == nil {
		return
	}
	session := mc.gameService.Session()
	mc.mainView.SetSessionInfo(session.OptionsSource(), session.LastGamePath())
	mc.refreshStatus()
}

// StatusText is the status line shown after action.
func StatusText(action models.GameAction, snap models.Snapshot, optionCount int) string {
	switch action.Kind {
	case models.ActionLoadOptions:
		return fmt.Sprintf("Loaded %d options from %s", optionCount, action.Target)
	case models.ActionSaveGame:
		return fmt.Sprintf("Saved game to %s", action.Target)
	case models.ActionLoadGame:
		return fmt.Sprintf("Loaded game from %s", action.Target)
	case models.ActionRegenerate:
		return "New card dealt"
	case models.ActionReset:
		return "Card reset"
	case models.ActionClickCell:
		if snap.HasBingo() {
			return fmt.Sprintf("Bingo! %d line(s)", len(snap.Lines))
		}
		return fmt.Sprintf("Toggled %s", action.Target)
	default:
		return "Ready"
	}
}

// handleError shows err under a title naming its kind. The board is left
// as it was, so there is nothing to roll back here.
func (mc *MainController) handleError(err error) {
	title := ErrorTitle(err)
	mc.logger.Debug("MainController", "showing error", map[string]interface{}{
		"title": title,
		"error": err.Error(),
	})
	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
		mc.mainView.UpdateStatus(title)
	}
}

// ErrorTitle maps an error to the user-facing dialog title.
func ErrorTitle(err error) string {
	switch {
	case errors.Is(err, board.ErrInsufficientOptions):
		return "Not enough options"
	case errors.Is(err, board.ErrInvalidCoordinate):
		return "Invalid cell"
	case errors.Is(err, board.ErrMalformedSave):
		return "Invalid save file"
	case errors.Is(err, board.ErrTextTooLong):
		return "Cell text too long to save"
	case errors.Is(err, options.ErrInvalidEncoding):
		return "Invalid option list"
	case errors.Is(err, services.ErrIOFailure):
		return "File error"
	default:
		return "Error"
	}
}

// Shutdown stops listening for board changes.
func (mc *MainController) Shutdown() {
	for _, id := range mc.subscriptions {
		mc.bus.Unsubscribe(id)
	}
	mc.subscriptions = nil
	mc.logger.Debug("MainController", "controller shut down", nil)
}
