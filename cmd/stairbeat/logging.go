package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/stairbeat/internal/config"
)

// newLogger builds the process logger. With a log file configured, output
// goes to a rotating file; otherwise it goes to fallback. The returned close
// function releases the file.
func newLogger(cfg config.LogConfig, fallback io.Writer, prefix string) (*log.Logger, func() error) {
	w := fallback
	closeFn := func() error { return nil }

	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w = lj
		closeFn = lj.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	// Validate has already rejected unknown levels
	if level, err := log.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
		logger.SetLevel(level)
	}

	return logger, closeFn
}
