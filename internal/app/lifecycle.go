package app

import (
	"randomized-bingo/internal/shutdown"

	"fyne.io/fyne/v2"
)

// setupLifecycle registers components for shutdown. They stop in reverse
// order: the controller detaches from the bus, the bus drops its
// subscribers, then the fyne app quits.
func (a *Application) setupLifecycle() {
	a.shutdown.Register("fyne", shutdown.Func(func() {
		fyne.Do(a.fyneApp.Quit)
	}))
	a.shutdown.Register("event bus", a.bus)
	a.shutdown.Register("controller", a.controller)

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
	})
}

// Shutdown stops every registered component and quits the app.
func (a *Application) Shutdown() {
	a.shutdown.Shutdown()
}
