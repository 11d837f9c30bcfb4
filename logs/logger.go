package logs

import (
	"log/slog"
	"os"
	"strings"

	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/modes"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var (
	level   = new(slog.LevelVar)
	logJSON = cmds.Switch("-log-json", "write logs as json lines")
)

func init() {
	cmds.Define("-log-level", cmds.Func(func(l slog.Level) {
		level.Set(l)
	}).Desc("minimum log level: debug, info, warn or error"))
	cmds.Define("-v", cmds.Func(func() {
		level.Set(slog.LevelDebug)
	}).Desc("same as -log-level debug"))
}

type Logger = *slog.Logger

// Logger writes to Writer, or to the systemd journal when stderr is already
// connected to it. Results go to stdout, so logs never mix with them.
func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	var handlers []slog.Handler

	if mode != modes.ModeDevelopment && os.Getenv("JOURNAL_STREAM") != "" {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err == nil {
			handlers = append(handlers, journalHandler)
		} else {
			fallback := newTerminalHandler(writer)
			handlers = append(handlers, fallback)
			slog.New(fallback).Warn("systemd journal unavailable", "error", err)
		}
	} else {
		handlers = append(handlers, newTerminalHandler(writer))
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func newTerminalHandler(writer Writer) slog.Handler {
	options := &slog.HandlerOptions{
		Level: level,
	}
	if *logJSON {
		return slog.NewJSONHandler(writer, options)
	}
	return slog.NewTextHandler(writer, options)
}

// toJournalKey maps attribute keys to journal field names, which allow only A-Z, 0-9 and _.
func toJournalKey(str string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}
