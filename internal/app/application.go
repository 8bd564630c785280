package app

import (
	"randomized-bingo/internal/board"
	"randomized-bingo/internal/config"
	"randomized-bingo/internal/controllers"
	"randomized-bingo/internal/events"
	"randomized-bingo/internal/logger"
	"randomized-bingo/internal/models"
	"randomized-bingo/internal/services"
	"randomized-bingo/internal/shutdown"
	"randomized-bingo/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Randomized Bingo"
	AppID      = "com.randomizedbingo.app"
	AppVersion = "1.0.0"

	// chromeHeight leaves room for the action bar and status bar.
	chromeHeight = 90
)

var _ controllers.View = (*views.MainView)(nil)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	config  config.Config
	logger  logger.Logger

	board       *board.Board
	bus         *events.Bus
	gameService *services.GameService
	controller  *controllers.MainController
	view        *views.MainView
	shutdown    *shutdown.Manager
}

func NewApplication(cfg config.Config, log logger.Logger) *Application {
	return newApplication(app.NewWithID(AppID), cfg, log)
}

func newApplication(fyneApp fyne.App, cfg config.Config, log logger.Logger) *Application {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.CellSize*board.Size, cfg.CellSize*board.Size+chromeHeight))
	window.CenterOnScreen()
	window.SetMaster()

	var b *board.Board
	if cfg.HasSeed {
		b = board.New(board.NewRand(cfg.Seed))
	} else {
		b = board.New(nil)
	}

	bus := events.NewBus(log)
	gameService := services.NewGameService(b, models.NewSessionRepository(), bus, log)

	mainView := views.NewMainView(window, cfg.CellSize)
	mainController := controllers.NewMainController(gameService, bus, log)
	mainController.SetMainView(mainView)
	mainController.SetStartupOptions(cfg.OptionsPath)

	a := &Application{
		fyneApp:     fyneApp,
		window:      window,
		config:      cfg,
		logger:      log,
		board:       b,
		bus:         bus,
		gameService: gameService,
		controller:  mainController,
		view:        mainView,
		shutdown:    shutdown.NewManager(log),
	}
	a.setupLifecycle()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":   AppVersion,
		"cell_size": cfg.CellSize,
		"seeded":    cfg.HasSeed,
		"options":   cfg.OptionsPath,
	})
	return a
}

// Run shows the window and blocks until the application quits.
func (a *Application) Run() error {
	a.controller.Start()
	a.shutdown.Listen()

	a.window.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
