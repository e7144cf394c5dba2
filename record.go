package logging

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Metadata is the optional structured payload of a record. A nil Metadata
// means the caller supplied none.
type Metadata map[string]any

// Location identifies the call site that produced a record.
type Location struct {
	File     string `json:"file"`
	Function string `json:"function"`
	Line     uint   `json:"line"`
}

// Record is a single log entry as delivered to a Sink. It is built at the
// call site and never retained by the Facade.
type Record struct {
	ID       uuid.UUID `json:"id"`
	Time     time.Time `json:"time"`
	Label    string    `json:"label"`
	Severity Severity  `json:"level"`
	Message  string    `json:"message"`
	Metadata Metadata  `json:"metadata,omitempty"`
	Location
}

// Pretty renders the record for humans: a header line and, when metadata is
// present, one sorted key=value line per entry. The result never ends with a
// newline; writers add their own terminator.
func (r Record) Pretty() string {
	var b strings.Builder
	b.WriteString(r.Time.Format(PrettyTimeLayout))
	b.WriteByte(' ')
	b.WriteString(r.Label)
	b.WriteByte(':')
	b.WriteString(r.Severity.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, line := range renderMetadata(r.Metadata) {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}
