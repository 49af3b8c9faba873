// Package logs builds the structured logger of the bare0 tools.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

// SetLevel sets the level of every logger built by New.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("logs: unknown level %q", name)
	}

	level.Set(l)

	return nil
}

// Level returns the current level.
func Level() slog.Level {
	return level.Level()
}

// New builds a logger writing text to terminal and, when file is not nil,
// JSON lines to file. Under a systemd service the terminal handler is
// replaced by the journal.
func New(terminal io.Writer, file io.Writer) *slog.Logger {
	var handlers []slog.Handler

	var terminalHandler slog.Handler
	if !isSystemdService() {
		terminalHandler = slog.NewTextHandler(terminal, &slog.HandlerOptions{
			Level: level,
		})
		handlers = append(handlers, terminalHandler)
	} else {
		handlers = append(handlers, journalHandler(terminal)...)
	}

	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level: level,
		}))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

func journalHandler(fallback io.Writer) []slog.Handler {
	h, err := slogjournal.NewHandler(&slogjournal.Options{
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
		return []slog.Handler{h}
	}

	textHandler := slog.NewTextHandler(fallback, &slog.HandlerOptions{Level: level})

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
	record.Add("error", err)
	_ = textHandler.Handle(context.Background(), record)

	return []slog.Handler{textHandler}
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)

	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}

	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
