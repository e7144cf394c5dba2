package journal

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Station-Manager/errors"
	"github.com/copper-debug/logging"
	"github.com/copper-debug/logging/internal/cobs"
	"github.com/goccy/go-json"
)

// Entry describes one journal file under a label.
type Entry struct {
	Name string
	// Active marks the session currently being written by this process.
	Active bool
}

// Reader lists and decrypts journals below Dir.
type Reader struct {
	Dir        string
	Passphrase string
	DeviceID   string
	// Active is the name of the session in progress, if any.
	Active string
}

// Labels returns the label directories, sorted.
func (r Reader) Labels() ([]string, error) {
	const op errors.Op = "journal.Reader.Labels"
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgListLabels)
	}
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			labels = append(labels, e.Name())
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// Names returns the journals recorded under label, oldest first.
func (r Reader) Names(label string) ([]Entry, error) {
	const op errors.Op = "journal.Reader.Names"
	entries, err := os.ReadDir(filepath.Join(r.Dir, label))
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgListNames)
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		out = append(out, Entry{Name: name, Active: name == r.Active})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out, nil
}

// ReadRaw decrypts a journal and returns each record's JSON text. Frames
// that are not valid COBS are returned undecoded; frames that are not UTF-8
// (usually a wrong passphrase) are skipped.
func (r Reader) ReadRaw(label, name string) ([]string, error) {
	const op errors.Op = "journal.Reader.ReadRaw"
	if r.Passphrase == "" {
		return nil, errors.New(op).Msg(errMsgMissingSecret)
	}
	data, err := os.ReadFile(filepath.Join(r.Dir, label, name+fileExt))
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgReadJournal)
	}

	c, err := newCipher(name, r.Passphrase, r.DeviceID)
	if err != nil {
		return nil, err
	}
	c.XORKeyStream(data, data)

	var lines []string
	for _, frame := range bytes.Split(data, []byte{cobs.Delimiter}) {
		if len(frame) == 0 {
			continue
		}
		decoded, derr := cobs.Decode(frame)
		if derr != nil {
			decoded = frame
		}
		if !utf8.Valid(decoded) {
			continue
		}
		lines = append(lines, string(decoded))
	}
	return lines, nil
}

// Read decrypts a journal and decodes its records. Lines that do not decode
// as records, such as a torn final write, are skipped.
func (r Reader) Read(label, name string) ([]logging.Record, error) {
	lines, err := r.ReadRaw(label, name)
	if err != nil {
		return nil, err
	}
	records := make([]logging.Record, 0, len(lines))
	for _, line := range lines {
		var rec logging.Record
		if json.Unmarshal([]byte(line), &rec) != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
