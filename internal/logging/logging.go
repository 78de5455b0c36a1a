package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. JSON goes to stdout and, when logstashAddr is
// set, is mirrored to Logstash. The returned closer flushes the mirror.
func New(level, logstashAddr string) (zerolog.Logger, io.Closer) {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if strings.TrimSpace(logstashAddr) != "" {
		if ls, err := NewLogstashWriter(logstashAddr); err == nil {
			out = zerolog.MultiLevelWriter(os.Stdout, ls)
			closer = ls
		}
	}

	logger := zerolog.New(out).With().Timestamp().Str("service", "bookstore-api").Logger().Level(ParseLevel(level))
	return logger, closer
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
