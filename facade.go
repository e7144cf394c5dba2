package logging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Facade builds one Record per call and hands it synchronously to its Sink.
// It holds no mutable state after construction, so a single Facade may be
// shared by any number of goroutines provided the Sink is safe for that.
type Facade struct {
	sink  Sink
	label string
	skip  int
	now   func() time.Time
}

// Option configures a Facade.
type Option func(*Facade)

// WithLabel sets the label stamped on every record.
func WithLabel(label string) Option {
	return func(f *Facade) {
		f.label = label
	}
}

// WithCallerSkip skips n additional stack frames when capturing the call
// site. Use it when the Facade is wrapped by a helper of your own.
func WithCallerSkip(n int) Option {
	return func(f *Facade) {
		if n > 0 {
			f.skip = n
		}
	}
}

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Facade) {
		if now != nil {
			f.now = now
		}
	}
}

// New returns a Facade delivering to sink. A nil sink discards records.
func New(sink Sink, opts ...Option) *Facade {
	if sink == nil {
		sink = Discard
	}
	f := &Facade{
		sink:  sink,
		label: DefaultLabel,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Named returns a copy of f that stamps records with label.
func (f *Facade) Named(label string) *Facade {
	if f == nil {
		return nil
	}
	c := *f
	c.label = label
	return &c
}

// Label reports the label stamped on records.
func (f *Facade) Label() string {
	if f == nil {
		return emptyString
	}
	return f.label
}

// Frames between emit and the user's call site: emit, then the exported method.
const facadeDepth = 2

// emit drops records whose severity is not one of the seven levels.
func (f *Facade) emit(sev Severity, msg string, md Metadata) {
	if f == nil || !sev.Valid() {
		return
	}
	f.sink.Log(Record{
		ID:       uuid.New(),
		Time:     f.now(),
		Label:    f.label,
		Severity: sev,
		Message:  msg,
		Metadata: md,
		Location: callerLocation(facadeDepth + f.skip),
	})
}

// Log delivers msg at sev. md may be nil. Nothing is delivered when sev is
// not a defined Severity.
func (f *Facade) Log(sev Severity, msg string, md Metadata) {
	f.emit(sev, msg, md)
}

func (f *Facade) Tracef(format string, args ...any) {
	f.emit(SeverityTrace, fmt.Sprintf(format, args...), nil)
}

func (f *Facade) Debugf(format string, args ...any) {
	f.emit(SeverityDebug, fmt.Sprintf(format, args...), nil)
}

func (f *Facade) Infof(format string, args ...any) {
	f.emit(SeverityInfo, fmt.Sprintf(format, args...), nil)
}

func (f *Facade) Noticef(format string, args ...any) {
	f.emit(SeverityNotice, fmt.Sprintf(format, args...), nil)
}

func (f *Facade) Warningf(format string, args ...any) {
	f.emit(SeverityWarning, fmt.Sprintf(format, args...), nil)
}

// Errorf formats according to format and logs the result at error severity.
// Example: log.Errorf("failed: %s", reason)
func (f *Facade) Errorf(format string, args ...any) {
	f.emit(SeverityError, fmt.Sprintf(format, args...), nil)
}

func (f *Facade) Criticalf(format string, args ...any) {
	f.emit(SeverityCritical, fmt.Sprintf(format, args...), nil)
}

// Metadata variants. msg is used verbatim and md is passed through as is.

func (f *Facade) TraceWith(msg string, md Metadata) {
	f.emit(SeverityTrace, msg, md)
}

func (f *Facade) DebugWith(msg string, md Metadata) {
	f.emit(SeverityDebug, msg, md)
}

func (f *Facade) InfoWith(msg string, md Metadata) {
	f.emit(SeverityInfo, msg, md)
}

func (f *Facade) NoticeWith(msg string, md Metadata) {
	f.emit(SeverityNotice, msg, md)
}

func (f *Facade) WarningWith(msg string, md Metadata) {
	f.emit(SeverityWarning, msg, md)
}

// ErrorWith logs msg at error severity with structured metadata.
// Example: log.ErrorWith("upload failed", logging.Metadata{"err": err, "bytes": n})
func (f *Facade) ErrorWith(msg string, md Metadata) {
	f.emit(SeverityError, msg, md)
}

func (f *Facade) CriticalWith(msg string, md Metadata) {
	f.emit(SeverityCritical, msg, md)
}
