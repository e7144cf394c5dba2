package logging

// Logger is the call-site API: printf-style helpers and metadata-carrying
// helpers for each severity. Location is always captured by the
// implementation, never passed in.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Noticef(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)

	TraceWith(msg string, md Metadata)
	DebugWith(msg string, md Metadata)
	InfoWith(msg string, md Metadata)
	NoticeWith(msg string, md Metadata)
	WarningWith(msg string, md Metadata)
	ErrorWith(msg string, md Metadata)
	CriticalWith(msg string, md Metadata)

	Log(sev Severity, msg string, md Metadata)
}

var _ Logger = (*Facade)(nil)
