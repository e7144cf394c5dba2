package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func (s *Service) initializeRollingFileLogger(name string) *lumberjack.Logger {
	if name == emptyString {
		name = "app"
	}

	path := filepath.Join(s.WorkingDir, s.LoggingConfig.RelLogFileDir, name+".log")

	return &lumberjack.Logger{
		Filename:   path,
		MaxBackups: s.LoggingConfig.LogFileMaxBackups,
		MaxAge:     s.LoggingConfig.LogFileMaxAgeDays,
		MaxSize:    s.LoggingConfig.LogFileMaxSizeMB,
		Compress:   s.LoggingConfig.LogFileCompress,
	}
}

func (s *Service) initializeConsoleWriter() zerolog.ConsoleWriter {
	out := s.Console
	if out == nil {
		out = os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    s.LoggingConfig.ConsoleNoColor || !isTerminal(out),
		TimeFormat: s.LoggingConfig.ConsoleTimeFormat,
	}
}

func (s *Service) initializeWriters() []io.Writer {
	var writers []io.Writer

	// If both writers are disabled, enable the file writer
	if !s.LoggingConfig.ConsoleLogging && !s.LoggingConfig.FileLogging {
		s.LoggingConfig.FileLogging = true
	}
	if s.LoggingConfig.FileLogging {
		s.fileWriter = s.initializeRollingFileLogger(s.LoggingConfig.FileName)
		writers = append(writers, s.fileWriter)
	}
	if s.LoggingConfig.ConsoleLogging {
		writers = append(writers, s.initializeConsoleWriter())
	}

	return writers
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
