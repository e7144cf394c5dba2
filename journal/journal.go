// Package journal stores log records in encrypted per-label files and reads
// them back.
//
// On disk a journal lives at <Dir>/<Label>/<Name>.log, where Name is the
// session start time. Each record is JSON encoded, COBS framed, terminated
// by a zero byte, and the whole file is one ChaCha20 keystream derived from
// the name, passphrase and device ID.
package journal

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/copper-debug/logging"
	"github.com/copper-debug/logging/internal/cobs"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"golang.org/x/crypto/chacha20"
)

const fileExt = ".log"

// Options configures Open.
type Options struct {
	Dir        string `validate:"required"`
	Label      string `validate:"required,excludesall=/\\,ne=.,ne=.."`
	Passphrase string `validate:"required"`
	// DeviceID is mixed into key derivation; readers must supply the same value.
	DeviceID string
	// Clock supplies the session start time. Defaults to time.Now.
	Clock func() time.Time
	// OnError receives encode and write failures. They are dropped when nil.
	OnError func(error)
}

// Journal is a logging.Sink writing one encrypted session file.
type Journal struct {
	mu      sync.Mutex
	file    *os.File
	cipher  *chacha20.Cipher
	label   string
	name    string
	path    string
	onError func(error)
	closed  bool
}

var _ logging.Sink = (*Journal)(nil)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validateOptions(opts *Options) error {
	const op errors.Op = "journal.validateOptions"
	if opts == nil {
		return errors.New(op).Msg(errMsgNilOptions)
	}
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(opts); err != nil {
		return errors.New(op).Err(err).Msg(errMsgInvalidOpts + " " + err.Error())
	}
	return nil
}

// Open starts a new journal session. It fails rather than append to an
// existing file, since that would reuse the keystream.
func Open(opts Options) (*Journal, error) {
	const op errors.Op = "journal.Open"
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	dir := filepath.Join(opts.Dir, opts.Label)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgCreateDir)
	}

	name := opts.Clock().Format(logging.PrettyTimeLayout)
	c, err := newCipher(name, opts.Passphrase, opts.DeviceID)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name+fileExt)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgCreateFile)
	}

	return &Journal{
		file:    f,
		cipher:  c,
		label:   opts.Label,
		name:    name,
		path:    path,
		onError: opts.OnError,
	}, nil
}

func (j *Journal) Label() string { return j.label }
func (j *Journal) Name() string  { return j.name }
func (j *Journal) Path() string  { return j.path }

// Log appends rec to the journal. Records are written in call order.
func (j *Journal) Log(rec logging.Record) {
	if j == nil {
		return
	}
	if err := j.append(rec); err != nil && j.onError != nil {
		j.onError(err)
	}
}

func (j *Journal) append(rec logging.Record) error {
	const op errors.Op = "journal.Journal.append"

	rec.Metadata = encodableMetadata(rec.Metadata)
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgEncodeRecord)
	}
	frame := append(cobs.Encode(data), cobs.Delimiter)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return errors.New(op).Msg(errMsgClosed)
	}
	j.cipher.XORKeyStream(frame, frame)
	if _, err = j.file.Write(frame); err != nil {
		return errors.New(op).Err(err).Msg(errMsgWriteRecord)
	}
	return nil
}

// Close flushes and closes the session file. Further records are rejected.
func (j *Journal) Close() error {
	const op errors.Op = "journal.Journal.Close"
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	if err := j.file.Sync(); err != nil {
		_ = j.file.Close()
		return errors.New(op).Err(err).Msg(errMsgWriteRecord)
	}
	return j.file.Close()
}

// encodableMetadata replaces error values, which have no useful JSON form,
// with their message. md is not modified.
func encodableMetadata(md logging.Metadata) logging.Metadata {
	if md == nil {
		return nil
	}
	var out logging.Metadata
	for k, v := range md {
		if err, ok := v.(error); ok {
			if out == nil {
				out = make(logging.Metadata, len(md))
				for k2, v2 := range md {
					out[k2] = v2
				}
			}
			out[k] = err.Error()
		}
	}
	if out == nil {
		return md
	}
	return out
}
