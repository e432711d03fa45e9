// Package logging installs the process-wide structured logger for the
// staking pool daemon.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Setup wires slog to emit JSON on stdout and returns the root logger, tagged
// with the service name and, when non-empty, the deployment environment. The
// returned logger becomes the slog default, and stdlib log output is routed
// through the same handler so lines from net/http and goleveldb land in the
// same stream.
func Setup(service, env string) *slog.Logger {
	return setup(os.Stdout, service, env)
}

func setup(w io.Writer, service, env string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{ReplaceAttr: renameAttr})

	tags := []slog.Attr{slog.String("service", strings.TrimSpace(service))}
	if env = strings.TrimSpace(env); env != "" {
		tags = append(tags, slog.String("env", env))
	}
	tagged := handler.WithAttrs(tags)

	logger := slog.New(tagged)
	slog.SetDefault(logger)

	bridge := slog.NewLogLogger(tagged, slog.LevelInfo)
	log.SetOutput(bridge.Writer())
	log.SetFlags(0)
	return logger
}

// renameAttr maps the slog builtin keys onto the field names the log
// pipeline indexes on.
func renameAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "timestamp"
	case slog.LevelKey:
		return slog.String("severity", strings.ToUpper(attr.Value.String()))
	case slog.MessageKey:
		attr.Key = "message"
	}
	return attr
}
