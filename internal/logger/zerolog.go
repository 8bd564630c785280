package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Options selects the level and output format. Out defaults to stdout.
type Options struct {
	Level zerolog.Level
	JSON  bool
	Out   io.Writer
}

type ZerologAdapter struct {
	logger zerolog.Logger
}

// New writes JSON lines when opts.JSON is set and coloured console lines
// otherwise.
func New(opts Options) *ZerologAdapter {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: out != os.Stdout}
	}
	return &ZerologAdapter{
		logger: zerolog.New(out).Level(opts.Level).With().Timestamp().Logger(),
	}
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	emit(z.logger.Info(), component, fields).Msg(message)
}

// Error logs err under a fixed message; callers put the context in fields.
func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	emit(z.logger.Error().Err(err), component, fields).Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	emit(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	emit(z.logger.Debug(), component, fields).Msg(message)
}

func emit(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	return event
}
