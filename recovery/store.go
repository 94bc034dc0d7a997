/*
Package recovery stores small, named JSON documents that survive restarts.

PURPOSE:
  The UI persists a few one-day records here (vacation today, today's
  schedule override, work-completed acknowledgement). The ticker reads them
  back every second. Documents are addressed by a short validated name and
  live at <dataDir>/recovery/<name>.json.

LIMITS:
  - Names: alphanumerics, dash and underscore, optional single extension,
    at most 100 characters
  - Size: 10 MiB per document

SEE ALSO:
  - records.go: The typed records and their date-keyed loaders
  - store/sqlite/sqlite.go: Database-backed implementation of Store
*/
package recovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/warp/salary-ticker/settings"
)

// Store persists named JSON documents.
type Store interface {
	// Load returns ErrFileNotFound when the document does not exist.
	Load(ctx context.Context, name string) (json.RawMessage, error)
	Save(ctx context.Context, name string, data json.RawMessage) error
	Delete(ctx context.Context, name string) error
}

// MaxDataBytes caps a single document.
const MaxDataBytes = 10 << 20

const maxNameLength = 100

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+(\.[a-zA-Z0-9]+)?$`)

// ValidateName checks a document name before it touches the file system.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &Error{Kind: KindValidation, Name: name, Message: "name cannot be empty"}
	case utf8.RuneCountInString(name) > maxNameLength:
		return &Error{Kind: KindValidation, Name: name, Message: "name too long (max 100 characters)"}
	case !namePattern.MatchString(name):
		return &Error{Kind: KindValidation, Name: name, Message: "only alphanumeric characters, dashes, underscores, and dots allowed"}
	}
	return nil
}

// ValidateData checks size and JSON well-formedness.
func ValidateData(name string, data json.RawMessage) error {
	if len(data) > MaxDataBytes {
		return &Error{Kind: KindTooLarge, Name: name, Message: "data too large (max 10485760 bytes)"}
	}
	if !json.Valid(data) {
		return &Error{Kind: KindParse, Name: name, Message: "data is not valid JSON"}
	}
	return nil
}

// =============================================================================
// FILE STORE
// =============================================================================

type FileStore struct {
	Dir string
}

// NewFileStore keeps documents in <dataDir>/recovery.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{Dir: filepath.Join(dataDir, "recovery")}
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.Dir, name+".json")
}

func (fs *FileStore) Load(ctx context.Context, name string) (json.RawMessage, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	info, err := os.Stat(fs.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, &Error{Kind: KindIO, Name: name, Message: "stat failed", Err: err}
	}
	if info.Size() > MaxDataBytes {
		return nil, &Error{Kind: KindTooLarge, Name: name, Message: "file exceeds size limit"}
	}
	data, err := os.ReadFile(fs.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, &Error{Kind: KindIO, Name: name, Message: "read failed", Err: err}
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, &Error{Kind: KindParse, Name: name, Message: "file is not valid JSON"}
	}
	return data, nil
}

func (fs *FileStore) Save(ctx context.Context, name string, data json.RawMessage) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateData(name, data); err != nil {
		return err
	}
	if err := settings.WriteFileAtomic(fs.path(name), data); err != nil {
		return &Error{Kind: KindIO, Name: name, Message: "write failed", Err: err}
	}
	return nil
}

func (fs *FileStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(fs.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Kind: KindIO, Name: name, Message: "delete failed", Err: err}
	}
	return nil
}
