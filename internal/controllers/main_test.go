package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"randomized-bingo/internal/board"
	"randomized-bingo/internal/events"
	"randomized-bingo/internal/models"
	"randomized-bingo/internal/options"
	"randomized-bingo/internal/services"
)

type shownError struct {
	title string
	err   error
}

type fakeView struct {
	loadOptions func(io.ReadCloser, string)
	saveGame    func(io.WriteCloser, string)
	loadGame    func(io.ReadCloser, string)
	regenerate  func()
	reset       func()
	cellTapped  func(int, int)

	renders     []models.Snapshot
	statuses    []string
	optionCount int
	errors      []shownError

	optionsSource string
	gameName      string
}

func (v *fakeView) SetLoadOptionsHandler(h func(io.ReadCloser, string)) { v.loadOptions = h }
func (v *fakeView) SetSaveGameHandler(h func(io.WriteCloser, string))   { v.saveGame = h }
func (v *fakeView) SetLoadGameHandler(h func(io.ReadCloser, string))    { v.loadGame = h }
func (v *fakeView) SetRegenerateHandler(h func())                       { v.regenerate = h }
func (v *fakeView) SetResetHandler(h func())                            { v.reset = h }
func (v *fakeView) SetCellTappedHandler(h func(int, int))               { v.cellTapped = h }

func (v *fakeView) Render(snap models.Snapshot)       { v.renders = append(v.renders, snap) }
func (v *fakeView) UpdateStatus(message string)       { v.statuses = append(v.statuses, message) }
func (v *fakeView) SetOptionCount(count int)          { v.optionCount = count }
func (v *fakeView) ShowError(title string, err error) { v.errors = append(v.errors, shownError{title, err}) }

func (v *fakeView) SetSessionInfo(optionsSource, gameName string) {
	v.optionsSource, v.gameName = optionsSource, gameName
}

func (v *fakeView) lastRender(t *testing.T) models.Snapshot {
	t.Helper()
	if len(v.renders) == 0 {
		t.Fatal("nothing rendered")
	}
	return v.renders[len(v.renders)-1]
}

func (v *fakeView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

type closeTracker struct {
	io.Reader
	io.Writer
	closed   bool
	closeErr error
}

func (c *closeTracker) Close() error {
	c.closed = true
	return c.closeErr
}

func optionText(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("O%d", i+1)
	}
	return strings.Join(lines, "\n") + "\n"
}

func newController(t *testing.T) (*MainController, *fakeView, *board.Board) {
	t.Helper()
	b := board.New(board.NewRand(3))
	bus := events.NewBus(nil)
	svc := services.NewGameService(b, models.NewSessionRepository(), bus, nil)
	mc := NewMainController(svc, bus, nil)
	view := &fakeView{}
	mc.SetMainView(view)
	t.Cleanup(mc.Shutdown)
	return mc, view, b
}

func TestSetMainViewWiresHandlers(t *testing.T) {
	_, view, _ := newController(t)
	if view.loadOptions == nil || view.saveGame == nil || view.loadGame == nil ||
		view.regenerate == nil || view.reset == nil || view.cellTapped == nil {
		t.Error("a view handler was not wired")
	}
}

func TestStartRendersInitialBoard(t *testing.T) {
	mc, view, _ := newController(t)
	mc.Start()

	snap := view.lastRender(t)
	if snap.SelectedCount() != 1 || snap.Cells[0][0].Text != board.PlaceholderText {
		t.Errorf("initial render = %+v", snap.Cells[0][0])
	}
	if view.lastStatus() != "Ready" {
		t.Errorf("status = %q", view.lastStatus())
	}
}

func TestStartLoadsStartupOptions(t *testing.T) {
	mc, view, _ := newController(t)
	path := filepath.Join(t.TempDir(), "opts.txt")
	if err := os.WriteFile(path, []byte(optionText(24)), 0o644); err != nil {
		t.Fatal(err)
	}
	mc.SetStartupOptions(path)
	mc.Start()

	if view.optionCount != 24 {
		t.Errorf("option count = %d", view.optionCount)
	}
	if text := view.lastRender(t).Cells[0][0].Text; !strings.HasPrefix(text, "O") {
		t.Errorf("cell text after startup load = %q", text)
	}
}

func TestStartupOptionsMissingShowsError(t *testing.T) {
	mc, view, _ := newController(t)
	mc.SetStartupOptions(filepath.Join(t.TempDir(), "missing.txt"))
	mc.Start()

	if len(view.errors) != 1 || view.errors[0].title != "File error" {
		t.Errorf("errors = %v", view.errors)
	}
}

func TestCellTapRendersAndReportsBingo(t *testing.T) {
	mc, view, _ := newController(t)
	mc.Start()

	for r := range board.Size {
		view.cellTapped(r, 1)
	}

	snap := view.lastRender(t)
	if len(snap.Lines) != 1 || snap.Lines[0].Kind != board.ColumnLine || snap.Lines[0].Index != 1 {
		t.Errorf("lines = %v", snap.Lines)
	}
	if !snap.Cells[4][1].InBingo {
		t.Error("column cell not marked")
	}
	if !strings.HasPrefix(view.lastStatus(), "Bingo!") {
		t.Errorf("status = %q", view.lastStatus())
	}
}

func TestLoadOptionsClosesReader(t *testing.T) {
	mc, view, _ := newController(t)
	mc.Start()

	src := &closeTracker{Reader: strings.NewReader(optionText(30))}
	view.loadOptions(src, "office.txt")

	if !src.closed {
		t.Error("reader not closed")
	}
	if len(view.errors) != 0 {
		t.Fatalf("errors = %v", view.errors)
	}
	if view.optionCount != 30 || view.lastStatus() != "Loaded 30 options from office.txt" {
		t.Errorf("count %d, status %q", view.optionCount, view.lastStatus())
	}
	if view.optionsSource != "office.txt" {
		t.Errorf("session options source = %q", view.optionsSource)
	}
}

func TestInputCloseErrorsDoNotFailLoads(t *testing.T) {
	mc, view, b := newController(t)
	mc.Start()

	opts := &closeTracker{Reader: strings.NewReader(optionText(24)), closeErr: errors.New("close failed")}
	view.loadOptions(opts, "opts.txt")
	view.cellTapped(1, 1)
	saved, err := b.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	view.reset()

	game := &closeTracker{Reader: bytes.NewReader(saved), closeErr: errors.New("close failed")}
	view.loadGame(game, "game.bng")

	if !opts.closed || !game.closed {
		t.Error("inputs not closed")
	}
	if len(view.errors) != 0 {
		t.Errorf("errors = %v", view.errors)
	}
	if !b.Cells()[1][1].Selected {
		t.Error("game not loaded")
	}
	if view.lastStatus() != "Loaded game from game.bng" || view.gameName != "game.bng" {
		t.Errorf("status %q, game name %q", view.lastStatus(), view.gameName)
	}
}

func TestStatusFollowsLastAction(t *testing.T) {
	mc, view, _ := newController(t)
	mc.Start()
	view.loadOptions(&closeTracker{Reader: strings.NewReader(optionText(24))}, "opts.txt")

	steps := []struct {
		name string
		do   func()
		want string
	}{
		{"toggle", func() { view.cellTapped(3, 2) }, "Toggled (3,2)"},
		{"regenerate", view.regenerate, "New card dealt"},
		{"reset", view.reset, "Card reset"},
		{"save", func() { view.saveGame(&closeTracker{Writer: io.Discard}, "night.bng") }, "Saved game to night.bng"},
	}
	for _, st := range steps {
		st.do()
		if got := view.lastStatus(); got != st.want {
			t.Errorf("%s: status = %q, want %q", st.name, got, st.want)
		}
	}
	if view.gameName != "night.bng" || view.optionsSource != "opts.txt" {
		t.Errorf("session info = %q, %q", view.optionsSource, view.gameName)
	}
}

func TestSaveThenLoadGame(t *testing.T) {
	mc, view, b := newController(t)
	mc.Start()
	view.loadOptions(&closeTracker{Reader: strings.NewReader(optionText(24))}, "opts")
	view.cellTapped(0, 4)
	want := b.Cells()

	var buf bytes.Buffer
	dst := &closeTracker{Writer: &buf}
	view.saveGame(dst, "game.bng")
	if !dst.closed || buf.Len() == 0 {
		t.Fatal("save did not write and close")
	}
	if view.lastStatus() != "Saved game to game.bng" {
		t.Errorf("status = %q", view.lastStatus())
	}

	view.reset()
	if b.Cells() == want {
		t.Fatal("reset changed nothing")
	}

	view.loadGame(&closeTracker{Reader: bytes.NewReader(buf.Bytes())}, "game.bng")
	if b.Cells() != want {
		t.Error("loaded board differs")
	}
	if view.lastRender(t).Cells[0][4].Selected != true {
		t.Error("render not updated after load")
	}
}

func TestSaveGameCloseError(t *testing.T) {
	mc, view, _ := newController(t)
	mc.Start()

	dst := &closeTracker{Writer: io.Discard, closeErr: errors.New("flush failed")}
	view.saveGame(dst, "game.bng")

	if len(view.errors) != 1 || !errors.Is(view.errors[0].err, services.ErrIOFailure) {
		t.Errorf("errors = %v", view.errors)
	}
}

func TestErrorsLeaveBoardAndShowTitle(t *testing.T) {
	mc, view, b := newController(t)
	mc.Start()
	before := b.Cells()

	view.regenerate()
	view.loadGame(&closeTracker{Reader: strings.NewReader("junk")}, "junk.bng")
	view.loadOptions(&closeTracker{Reader: strings.NewReader(optionText(5))}, "short.txt")
	view.cellTapped(-1, 0)

	want := []string{"Not enough options", "Invalid save file", "Not enough options", "Invalid cell"}
	if len(view.errors) != len(want) {
		t.Fatalf("errors = %v", view.errors)
	}
	for i, w := range want {
		if view.errors[i].title != w {
			t.Errorf("error %d title = %q, want %q", i, view.errors[i].title, w)
		}
	}
	if b.Cells() != before {
		t.Error("board changed by failing actions")
	}
}

func TestStatusText(t *testing.T) {
	b := board.New(board.NewRand(1))
	plain := models.NewSnapshot(b)
	for c := range board.Size {
		if _, err := b.Toggle(4, c); err != nil {
			t.Fatal(err)
		}
	}
	bingo := models.NewSnapshot(b)

	tests := []struct {
		action models.GameAction
		snap   models.Snapshot
		want   string
	}{
		{models.GameAction{Kind: models.ActionLoadOptions, Target: "a.txt"}, plain, "Loaded 24 options from a.txt"},
		{models.GameAction{Kind: models.ActionLoadGame, Target: "g.bng"}, plain, "Loaded game from g.bng"},
		{models.GameAction{Kind: models.ActionClickCell, Target: "(4,4)"}, plain, "Toggled (4,4)"},
		{models.GameAction{Kind: models.ActionClickCell, Target: "(4,4)"}, bingo, "Bingo! 1 line(s)"},
		{models.GameAction{Kind: "unknown"}, plain, "Ready"},
	}
	for _, tt := range tests {
		if got := StatusText(tt.action, tt.snap, 24); got != tt.want {
			t.Errorf("StatusText(%v) = %q, want %q", tt.action.Kind, got, tt.want)
		}
	}
}

func TestErrorTitle(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{board.ErrInsufficientOptions, "Not enough options"},
		{fmt.Errorf("cell: %w", board.ErrInvalidCoordinate), "Invalid cell"},
		{board.ErrMalformedSave, "Invalid save file"},
		{board.ErrTextTooLong, "Cell text too long to save"},
		{options.ErrInvalidEncoding, "Invalid option list"},
		{fmt.Errorf("%w: x", services.ErrIOFailure), "File error"},
		{errors.New("other"), "Error"},
	}
	for _, tt := range tests {
		if got := ErrorTitle(tt.err); got != tt.want {
			t.Errorf("ErrorTitle(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestShutdownStopsRendering(t *testing.T) {
	mc, view, _ := newController(t)
	mc.Start()
	mc.Shutdown()

	n := len(view.renders)
	view.reset()
	if len(view.renders) != n {
		t.Error("rendered after shutdown")
	}
}
