package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/logging"
	"github.com/arthur-debert/hermes/pkg/types"
)

// Format selects the on-disk encoding of a journal.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Entry is one recorded action.
type Entry struct {
	ID   string     `json:"id" yaml:"id"`
	Seq  int        `json:"seq" yaml:"seq"`
	Time time.Time  `json:"time" yaml:"time"`
	Type string     `json:"type" yaml:"type"`
	Data any        `json:"data,omitempty" yaml:"data,omitempty"`
	Meta types.Meta `json:"meta" yaml:"meta"`
}

// Receipt is what Dispatch returns for a recorded action.
type Receipt struct {
	ID   string `json:"id" yaml:"id"`
	Seq  int    `json:"seq" yaml:"seq"`
	Type string `json:"type" yaml:"type"`
	Path string `json:"path" yaml:"path"`
}

// Journal appends actions to a file.
type Journal struct {
	mu     sync.Mutex
	fs     afero.Fs
	path   string
	format Format
	seq    int
	now    func() time.Time
}

// DefaultPath returns the journal location under the XDG data directory,
// named for format.
func DefaultPath(format Format) string {
	name := "journal.jsonl"
	if format == FormatYAML {
		name = "journal.yaml"
	}
	return filepath.Join(xdg.DataHome, "hermes", name)
}

// Open prepares a journal at path, creating parent directories. Sequence
// numbers continue from any entries already in the file.
func Open(fs afero.Fs, path string, format Format) (*Journal, error) {
	switch format {
	case FormatJSON, FormatYAML:
	case "":
		format = FormatJSON
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown journal format %q", format).
			WithDetail("format", string(format))
	}

	if path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "journal path cannot be empty")
	}

	dir := filepath.Dir(path)
	if _, err := fs.Stat(dir); os.IsNotExist(err) {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrJournalWrite, "cannot create journal directory for %s", path)
		}
	}

	j := &Journal{
		fs:     fs,
		path:   path,
		format: format,
		now:    time.Now,
	}

	entries, err := j.Read()
	if err != nil {
		return nil, err
	}
	j.seq = len(entries)

	logger := logging.GetLogger("journal")
	logger.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("entries", j.seq).
		Msg("Journal opened")

	return j, nil
}

// Dispatch records action and returns its receipt. It has the shape of a
// terminal dispatch function.
func (j *Journal) Dispatch(action types.Action) (Receipt, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{
		ID:   uuid.NewString(),
		Seq:  j.seq + 1,
		Time: j.now().UTC(),
		Type: action.Type,
		Data: action.Data,
		Meta: action.Meta,
	}

	payload, err := j.encode(entry)
	if err != nil {
		return Receipt{}, errors.Wrapf(err, errors.ErrJournalWrite, "cannot encode %s action", action.Type)
	}

	f, err := j.fs.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return Receipt{}, errors.Wrapf(err, errors.ErrJournalWrite, "cannot open journal %s", j.path)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(payload); err != nil {
		return Receipt{}, errors.Wrapf(err, errors.ErrJournalWrite, "cannot append to journal %s", j.path)
	}

	j.seq = entry.Seq
	return Receipt{ID: entry.ID, Seq: entry.Seq, Type: entry.Type, Path: j.path}, nil
}

func (j *Journal) encode(entry Entry) ([]byte, error) {
	switch j.format {
	case FormatYAML:
		body, err := yaml.Marshal(entry)
		if err != nil {
			return nil, err
		}
		return append([]byte("---\n"), body...), nil
	default:
		line, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		return append(line, '\n'), nil
	}
}

// Read returns every entry in the journal. A missing file reads as empty.
func (j *Journal) Read() ([]Entry, error) {
	raw, err := afero.ReadFile(j.fs, j.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrJournalRead, "cannot read journal %s", j.path)
	}

	var entries []Entry
	switch j.format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		for {
			var e Entry
			if err := dec.Decode(&e); err != nil {
				if stderrors.Is(err, io.EOF) {
					break
				}
				return nil, errors.Wrapf(err, errors.ErrJournalRead, "cannot decode journal %s", j.path)
			}
			entries = append(entries, e)
		}
	default:
		scanner := bufio.NewScanner(bytes.NewReader(raw))
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var e Entry
			if err := json.Unmarshal(line, &e); err != nil {
				return nil, errors.Wrapf(err, errors.ErrJournalRead, "cannot decode journal %s", j.path)
			}
			entries = append(entries, e)
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrJournalRead, "cannot scan journal %s", j.path)
		}
	}

	return entries, nil
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Format returns the journal encoding.
func (j *Journal) Format() Format {
	return j.format
}

// Len returns the number of entries written so far.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}
