package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format selects the handler used for log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a --log-format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "console", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (want text or json)", s)
	}
}

// Config holds logger configuration.
type Config struct {
	Level  Level
	Format Format
	// Output defaults to stderr so reports on stdout stay machine-readable.
	Output io.Writer
}

// DefaultConfig logs warnings and above as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}
