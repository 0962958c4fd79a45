package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

// Logger writes "[PREFIX] [LEVEL] message" lines, the prefix in color.
type Logger struct {
	log *logrus.Logger
}

// New creates a Logger writing to out. color may be empty for plain output.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix must not be empty")
	}
	if out == nil {
		return nil, errors.New("logger output must not be nil")
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	return &Logger{log: l}, nil
}

func (l *Logger) Info(msg string)    { l.log.Info(msg) }
func (l *Logger) Warning(msg string) { l.log.Warn(msg) }
func (l *Logger) Error(msg string)   { l.log.Error(msg) }

type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if f.color != "" {
		fmt.Fprintf(&b, "%s[%s]%s", f.color, f.prefix, colorReset)
	} else {
		fmt.Fprintf(&b, "[%s]", f.prefix)
	}
	fmt.Fprintf(&b, " [%s] %s\n", strings.ToUpper(entry.Level.String()), entry.Message)
	return b.Bytes(), nil
}
