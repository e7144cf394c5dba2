package logging

import (
	"strconv"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// Severity is the fixed, ordered set of log levels.
type Severity uint8

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityNotice
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{
	SeverityTrace:    "trace",
	SeverityDebug:    "debug",
	SeverityInfo:     "info",
	SeverityNotice:   "notice",
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "critical",
}

// Severities lists every level in ascending order.
func Severities() []Severity {
	return []Severity{
		SeverityTrace,
		SeverityDebug,
		SeverityInfo,
		SeverityNotice,
		SeverityWarning,
		SeverityError,
		SeverityCritical,
	}
}

func (s Severity) Valid() bool {
	return s <= SeverityCritical
}

func (s Severity) String() string {
	if !s.Valid() {
		return "severity(" + strconv.Itoa(int(s)) + ")"
	}
	return severityNames[s]
}

// ParseSeverity parses a level name case-insensitively. "warn" and "crit"
// are accepted as aliases.
func ParseSeverity(level string) (Severity, error) {
	const op errors.Op = "logging.ParseSeverity"
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return SeverityTrace, nil
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "notice":
		return SeverityNotice, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical", "crit":
		return SeverityCritical, nil
	}
	return SeverityTrace, errors.New(op).Msg(errMsgUnknownSeverity + ": " + strconv.Quote(level))
}

func (s Severity) MarshalText() ([]byte, error) {
	const op errors.Op = "logging.Severity.MarshalText"
	if !s.Valid() {
		return nil, errors.New(op).Msg(errMsgUnknownSeverity + ": " + s.String())
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// zerologLevel maps a severity onto the closest zerolog level. zerolog has
// no notice or critical, so those fold into info and fatal respectively; the
// exact name is carried in the severity field.
func (s Severity) zerologLevel() zerolog.Level {
	switch s {
	case SeverityTrace:
		return zerolog.TraceLevel
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityInfo, SeverityNotice:
		return zerolog.InfoLevel
	case SeverityWarning:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	case SeverityCritical:
		return zerolog.FatalLevel
	default:
		return zerolog.NoLevel
	}
}
