package symtab

import (
	"io"
	"log"

	"github.com/crow-cp/crow/utils"
)

// Log collects diagnostics and, when given a writer, logs them as they
// arrive.
type Log struct {
	logger   *log.Logger
	Warnings []string
	Errors   []string
}

// NewLog makes a diagnostics channel. A nil writer only collects.
func NewLog(w io.Writer) *Log {
	l := &Log{}
	if w != nil {
		l.logger = log.New(w, "", log.LstdFlags)
	}
	return l
}

func (l *Log) Warn(msg string) {
	l.Warnings = append(l.Warnings, msg)
	if l.logger != nil {
		l.logger.Println(utils.Colorize.Warning("WARNING:"), msg)
	}
}

func (l *Log) Error(msg string) {
	l.Errors = append(l.Errors, msg)
	if l.logger != nil {
		l.logger.Println(utils.Colorize.Error("ERROR:"), msg)
	}
}
