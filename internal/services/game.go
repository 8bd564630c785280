package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"randomized-bingo/internal/board"
	"randomized-bingo/internal/events"
	"randomized-bingo/internal/logger"
	"randomized-bingo/internal/models"
	"randomized-bingo/internal/options"

	"github.com/natefinch/atomic"
)

// ErrIOFailure wraps any failure to read or write an external file.
var ErrIOFailure = errors.New("i/o failure")

// maxSaveSize bounds how much of a save file is read: 25 records of at
// most 65535 text bytes plus the length prefix and flag.
const maxSaveSize = board.CellCount * (2 + 65535 + 1)

// GameService performs the user actions against the board. It is not safe
// for concurrent use; callers drive it from the UI goroutine.
type GameService struct {
	board  *board.Board
	repo   *models.SessionRepository
	bus    *events.Bus
	logger logger.Logger
}

func NewGameService(b *board.Board, repo *models.SessionRepository, bus *events.Bus, log logger.Logger) *GameService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &GameService{
		board:  b,
		repo:   repo,
		bus:    bus,
		logger: log,
	}
}

func (s *GameService) Snapshot() models.Snapshot {
	return models.NewSnapshot(s.board)
}

func (s *GameService) OptionCount() int {
	return s.repo.OptionCount()
}

func (s *GameService) Session() *models.SessionRepository {
	return s.repo
}

// LoadOptions reads an option list and deals a new card from it. The pool
// is replaced only if the new card could be dealt.
func (s *GameService) LoadOptions(path string) error {
	opts, err := options.Load(path)
	if err != nil {
		return s.fail("load_options", path, ioFailure(err, "read options", path))
	}
	return s.applyOptions(opts, path)
}

func (s *GameService) LoadOptionsFrom(r io.Reader, source string) error {
	opts, err := options.Read(r)
	if err != nil {
		return s.fail("load_options", source, ioFailure(err, "read options", source))
	}
	return s.applyOptions(opts, source)
}

func (s *GameService) applyOptions(opts []string, source string) error {
	if err := s.board.Regenerate(opts); err != nil {
		return s.fail("load_options", source, err)
	}
	s.repo.SetOptions(opts, source)
	s.repo.Record(models.ActionLoadOptions, source)

	s.logger.Info("GameService", "options loaded", map[string]interface{}{
		"source":  source,
		"options": len(opts),
	})
	s.publish(events.OptionsLoaded, map[string]interface{}{
		"source": source,
		"count":  len(opts),
	})
	s.publishBoard()
	return nil
}

// Regenerate deals a new card from the loaded pool.
func (s *GameService) Regenerate() error {
	if err := s.board.Regenerate(s.repo.Options()); err != nil {
		return s.fail("regenerate", "", err)
	}
	s.repo.Record(models.ActionRegenerate, "")
	s.logger.Debug("GameService", "board regenerated", map[string]interface{}{
		"options": s.repo.OptionCount(),
	})
	s.publishBoard()
	return nil
}

func (s *GameService) Reset() {
	s.board.Reset()
	s.repo.Record(models.ActionReset, "")
	s.logger.Debug("GameService", "board reset", nil)
	s.publishBoard()
}

// ClickCell toggles the cell and returns the resulting snapshot. Clicking
// the free cell changes nothing but still succeeds.
func (s *GameService) ClickCell(row, col int) (models.Snapshot, error) {
	selected, err := s.board.Toggle(row, col)
	if err != nil {
		return s.Snapshot(), s.fail("click_cell", "", err)
	}

	pos := board.Position{Row: row, Col: col}
	s.repo.Record(models.ActionClickCell, pos.String())

	snap := s.Snapshot()
	s.logger.Debug("GameService", "cell toggled", map[string]interface{}{
		"cell":     pos.String(),
		"selected": selected,
		"lines":    len(snap.Lines),
	})
	s.publish(events.BoardChanged, map[string]interface{}{"snapshot": snap})
	return snap, nil
}

// SaveGame writes the board to path through a temporary sibling file that
// replaces path only once fully written, so an existing save is never left
// truncated.
func (s *GameService) SaveGame(path string) error {
	data, err := s.board.MarshalBinary()
	if err != nil {
		return s.fail("save_game", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return s.fail("save_game", path, ioFailure(err, "write game", path))
	}
	s.saved(path, len(data))
	return nil
}

func (s *GameService) SaveGameTo(w io.Writer, target string) error {
	data, err := s.board.MarshalBinary()
	if err != nil {
		return s.fail("save_game", target, err)
	}
	if _, err := w.Write(data); err != nil {
		return s.fail("save_game", target, ioFailure(err, "write game", target))
	}
	s.saved(target, len(data))
	return nil
}

func (s *GameService) saved(target string, size int) {
	s.repo.SetLastGamePath(target)
	s.repo.Record(models.ActionSaveGame, target)
	s.logger.Info("GameService", "game saved", map[string]interface{}{
		"target": target,
		"bytes":  size,
	})
	s.publish(events.GameSaved, map[string]interface{}{"target": target})
}

func (s *GameService) LoadGame(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return s.fail("load_game", path, ioFailure(err, "open game", path))
	}
	defer f.Close()

	return s.loadGame(f, path)
}

func (s *GameService) LoadGameFrom(r io.Reader, source string) error {
	return s.loadGame(r, source)
}

func (s *GameService) loadGame(r io.Reader, source string) error {
	data, err := io.ReadAll(io.LimitReader(r, maxSaveSize+1))
	if err != nil {
		return s.fail("load_game", source, ioFailure(err, "read game", source))
	}
	if len(data) > maxSaveSize {
		return s.fail("load_game", source, fmt.Errorf("%s: %w: file larger than %d bytes", source, board.ErrMalformedSave, maxSaveSize))
	}
	if err := s.board.UnmarshalBinary(data); err != nil {
		return s.fail("load_game", source, fmt.Errorf("%s: %w", source, err))
	}

	s.repo.SetLastGamePath(source)
	s.repo.Record(models.ActionLoadGame, source)
	s.logger.Info("GameService", "game loaded", map[string]interface{}{
		"source": source,
		"bytes":  len(data),
	})
	s.publishBoard()
	return nil
}

func (s *GameService) publishBoard() {
	s.publish(events.BoardChanged, map[string]interface{}{"snapshot": s.Snapshot()})
}

func (s *GameService) publish(eventType string, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, Data: data})
}

func (s *GameService) fail(action, target string, err error) error {
	s.logger.Error("GameService", err, map[string]interface{}{
		"action": action,
		"target": target,
	})
	return err
}

// ioFailure tags err as ErrIOFailure unless it is a content error that
// already has its own kind.
func ioFailure(err error, op, target string) error {
	if errors.Is(err, options.ErrInvalidEncoding) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIOFailure, op, target, err)
}
