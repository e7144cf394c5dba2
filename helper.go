package logging

import (
	stderrs "errors"
	"sort"
	"strings"
	"time"

	smerrors "github.com/Station-Manager/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Field names written by the Service alongside zerolog's own level/message.
const (
	fieldSeverity = "severity"
	fieldLabel    = "label"
	fieldRecordID = "record_id"
	fieldFile     = "file"
	fieldFunction = "function"
	fieldLine     = "line"
	fieldMetadata = "metadata"
)

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, "")
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	return strings.Join(chain, " -> ")
}

// writeRecord fills a zerolog event from rec and sends it.
func writeRecord(logger *zerolog.Logger, rec Record, withTimestamp bool) {
	event := logger.WithLevel(rec.Severity.zerologLevel())
	if event == nil {
		return
	}

	event.Str(fieldSeverity, rec.Severity.String())
	if rec.Label != emptyString {
		event.Str(fieldLabel, rec.Label)
	}
	if rec.ID != uuid.Nil {
		event.Str(fieldRecordID, rec.ID.String())
	}
	if withTimestamp && !rec.Time.IsZero() {
		event.Time(zerolog.TimestampFieldName, rec.Time)
	}
	event.Str(fieldFile, rec.File).
		Str(fieldFunction, rec.Function).
		Uint(fieldLine, rec.Line)

	if len(rec.Metadata) > 0 {
		dict := zerolog.Dict()
		addMetadata(dict, rec.Metadata)
		event.Dict(fieldMetadata, dict)
	}

	event.Msg(rec.Message)
}

// addMetadata writes md in key order, using typed zerolog fields where the
// value's type is known. Errors get the full chain enrichment.
func addMetadata(e *zerolog.Event, md Metadata) {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := md[key].(type) {
		case nil:
			e.Interface(key, nil)
		case string:
			e.Str(key, v)
		case []string:
			e.Strs(key, v)
		case bool:
			e.Bool(key, v)
		case int:
			e.Int(key, v)
		case int32:
			e.Int32(key, v)
		case int64:
			e.Int64(key, v)
		case uint:
			e.Uint(key, v)
		case uint32:
			e.Uint32(key, v)
		case uint64:
			e.Uint64(key, v)
		case float32:
			e.Float32(key, v)
		case float64:
			e.Float64(key, v)
		case time.Time:
			e.Time(key, v)
		case time.Duration:
			e.Dur(key, v)
		case []byte:
			e.Bytes(key, v)
		case error:
			addError(e, key, v)
		default:
			e.Interface(key, v)
		}
	}
}

func addError(e *zerolog.Event, key string, err error) {
	e.AnErr(key, err)
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) == 0 {
		return
	}
	e.Strs(key+"_chain", chain)
	e.Str(key+"_root", root)
	e.Str(key+"_history", joinChain(chain))
	e.Strs(key+"_ops", ops)
	if rootOp != "" {
		e.Str(key+"_root_op", rootOp)
	}
}
