package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Service is a Sink that writes records through zerolog to a rolling file
// and/or the console. A zero Service (or a nil *Service) is a silent no-op
// until Initialize succeeds.
type Service struct {
	WorkingDir    string
	LoggingConfig *Config
	// Console receives console output. Defaults to os.Stderr.
	Console io.Writer

	fileWriter    *lumberjack.Logger
	logger        atomic.Pointer[zerolog.Logger]
	isInitialized atomic.Bool
	isClosed      atomic.Bool
	fileClosed    atomic.Bool
	minSeverity   Severity
	activeOps     atomic.Int32
	mu            sync.RWMutex
	initOnce      sync.Once
	initErr       error
}

var _ Sink = (*Service)(nil)

// NewService returns a Service for cfg rooted at workingDir. Call Initialize
// before use.
func NewService(workingDir string, cfg *Config) *Service {
	return &Service{WorkingDir: workingDir, LoggingConfig: cfg}
}

// Initialize validates the config and opens the configured writers. Calling
// it more than once returns the result of the first call. A closed Service
// cannot be initialized again.
func (s *Service) Initialize() error {
	const op errors.Op = "logging.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}
	if s.LoggingConfig == nil {
		return errors.New(op).Msg(errMsgAppCfgNotSet)
	}

	if s.isClosed.Load() {
		return errors.New(op).Msg(errMsgClosed)
	}

	s.initOnce.Do(func() {
		s.initErr = s.initialize()
	})
	return s.initErr
}

func (s *Service) initialize() error {
	const op errors.Op = "logging.Service.initialize"

	// Work on a private copy; initializeWriters may adjust it.
	cfg := *s.LoggingConfig
	s.LoggingConfig = &cfg

	if err := validateConfig(s.LoggingConfig); err != nil {
		return errors.New(op).Err(err).Msg(err.Error())
	}

	minSeverity, err := ParseSeverity(s.LoggingConfig.Level)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	fileLogging := s.LoggingConfig.FileLogging || !s.LoggingConfig.ConsoleLogging
	if fileLogging {
		if s.WorkingDir == emptyString {
			return errors.New(op).Msg(errMsgWorkingDir)
		}
		dir := filepath.Join(s.WorkingDir, s.LoggingConfig.RelLogFileDir)
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(op).Err(err).Msg(errMsgLogDir)
		}
	}

	writers := s.initializeWriters()
	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).Level(zerolog.TraceLevel)
	s.minSeverity = minSeverity
	s.logger.Store(&logger)
	s.isInitialized.Store(true)
	return nil
}

// Log writes rec if its severity is at or above the configured level.
func (s *Service) Log(rec Record) {
	if s == nil || !s.isInitialized.Load() {
		return
	}
	if !rec.Severity.Valid() || rec.Severity < s.minSeverity {
		return
	}

	// Hold the read lock so Close cannot release the file writer mid-write.
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isInitialized.Load() {
		return
	}

	s.activeOps.Inc()
	defer s.activeOps.Dec()

	logger := s.logger.Load()
	if logger == nil {
		return
	}
	writeRecord(logger, rec, s.LoggingConfig.WithTimestamp)
}

// Hook installs zerolog hooks on the underlying logger.
func (s *Service) Hook(hooks ...zerolog.Hook) {
	if s == nil || !s.isInitialized.Load() {
		return
	}

	// Atomic compare-and-swap loop for thread-safe hook installation
	for {
		oldLogger := s.logger.Load()
		if oldLogger == nil {
			return
		}

		newLogger := oldLogger.Hook(hooks...)

		if s.logger.CompareAndSwap(oldLogger, &newLogger) {
			return
		}
	}
}

// ActiveOperations reports how many Log calls are currently writing.
func (s *Service) ActiveOperations() int32 {
	if s == nil {
		return 0
	}
	return s.activeOps.Load()
}

// Close stops accepting records and waits up to ShutdownTimeoutMS for
// in-flight writes before closing the file writer. If the wait times out the
// file writer is closed in the background once the remaining writes finish.
// Close is safe to call more than once.
func (s *Service) Close() error {
	const op errors.Op = "logging.Service.Close"
	if s == nil || !s.isInitialized.CompareAndSwap(true, false) {
		return nil
	}
	s.isClosed.Store(true)

	timeout := time.Duration(s.LoggingConfig.ShutdownTimeoutMS) * time.Millisecond
	if !s.lockWithin(timeout) {
		if logger := s.logger.Load(); logger != nil && s.LoggingConfig.ShutdownTimeoutWarning {
			logger.Warn().
				Int32("active_operations", s.activeOps.Load()).
				Dur("timeout", timeout).
				Msg("Logger shutdown timeout exceeded")
		}
		s.logger.Store(nil)
		go func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			_ = s.closeFile()
		}()
		return nil
	}
	defer s.mu.Unlock()

	s.logger.Store(nil)
	if err := s.closeFile(); err != nil {
		return errors.New(op).Err(err).Msg(errMsgCloseFile)
	}
	return nil
}

// closeFile closes the rolling file writer. The caller holds the write lock.
func (s *Service) closeFile() error {
	if s.fileWriter == nil {
		return nil
	}
	err := s.fileWriter.Close()
	s.fileClosed.Store(true)
	return err
}

// lockWithin takes the write lock, giving up after timeout. A zero timeout
// waits indefinitely.
func (s *Service) lockWithin(timeout time.Duration) bool {
	if timeout <= 0 {
		s.mu.Lock()
		return true
	}
	deadline := time.Now().Add(timeout)
	for !s.mu.TryLock() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}
