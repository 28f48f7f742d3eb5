package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"docvault/internal/domain"
)

// Format is the on-disk representation found by Load.
type Format string

const (
	FormatPlain     Format = "plain"
	FormatEncrypted Format = "encrypted"
)

// LoadInfo describes what Load found and did.
type LoadInfo struct {
	Format Format

	// Created is set when the file did not exist and was created empty.
	Created bool

	// Upgraded is set when a plaintext file was encrypted for the first time.
	Upgraded bool
}

const fileMode = 0o600

// File persists one Document to one file.
type File struct {
	path  string
	codec Codec
	mu    sync.Mutex
}

// NewFile returns a File for source. A relative source is resolved against
// baseDir; an empty baseDir means the working directory.
func NewFile(baseDir, source string) (*File, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: source is required", domain.ErrConfig)
	}
	codec, err := CodecFor(source)
	if err != nil {
		return nil, err
	}
	path := source
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return &File{path: filepath.Clean(path), codec: codec}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string { return f.path }

// Codec returns the codec chosen for the file.
func (f *File) Codec() Codec { return f.codec }

// Load reads the Document. A missing file is created empty. With enc set, a
// plaintext file is encrypted in place before Load returns.
func (f *File) Load(enc *Encryption) (domain.Document, LoadInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	info := LoadInfo{Format: FormatPlain}
	if enc != nil {
		info.Format = FormatEncrypted
	}

	b, err := readFile(f.path)
	if err != nil {
		return nil, info, err
	}
	if b == nil {
		if err := f.write(domain.NewDocument(), enc); err != nil {
			return nil, info, err
		}
		info.Created = true
		return domain.NewDocument(), info, nil
	}

	m, err := f.codec.Unmarshal(b)
	if err != nil {
		return nil, info, fmt.Errorf("%s: %w", f.path, err)
	}

	switch {
	case isEnvelope(m) && enc == nil:
		return nil, info, fmt.Errorf("%w: %s is encrypted, a secret is required", domain.ErrConfig, f.path)
	case isEnvelope(m):
		doc, err := unseal(m, enc)
		if err != nil {
			return nil, info, fmt.Errorf("%s: %w", f.path, err)
		}
		return doc, info, nil
	case enc != nil:
		if err := f.write(m, enc); err != nil {
			return nil, info, err
		}
		info.Upgraded = true
		return m, info, nil
	default:
		return m, info, nil
	}
}

// Create replaces the file with an empty Document, whatever it held before.
func (f *File) Create(enc *Encryption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(domain.NewDocument(), enc)
}

// Save writes doc, sealing it in a fresh envelope when enc is set. doc is
// only read.
func (f *File) Save(doc domain.Document, enc *Encryption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(doc, enc)
}

// Remove deletes the file. A missing file is not an error.
func (f *File) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return removeFile(f.path)
}

func (f *File) write(doc domain.Document, enc *Encryption) error {
	out := doc
	if enc != nil {
		var err error
		if out, err = seal(doc, enc); err != nil {
			return err
		}
	}
	b, err := f.codec.Marshal(out)
	if err != nil {
		return err
	}
	return writeFile(f.path, b, fileMode)
}
