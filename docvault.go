package docvault

import (
	"fmt"

	"docvault/internal/crypto"
	"docvault/internal/docpath"
	"docvault/internal/domain"
	"docvault/internal/query"
	"docvault/internal/store"
)

// DefaultIterations is the PBKDF2 iteration count used when Options.Iterations
// is zero.
const DefaultIterations = crypto.DefaultIterations

// MaxIterations is the largest accepted PBKDF2 iteration count.
const MaxIterations = crypto.MaxIterations

// Document is a nested key/value mapping.
type Document = domain.Document

// LoadInfo describes what Open found on disk.
type LoadInfo = store.LoadInfo

// Options configures Open.
type Options struct {
	// Source is the document file, ending in .json, .yaml or .yml.
	Source  string
	// BaseDir resolves a relative Source. Empty means the working directory.
	BaseDir string

	// Encryption enables encryption at rest; Secret is then required.
	Encryption bool
	Secret     string
	// Iterations is the PBKDF2 iteration count for new envelopes.
	Iterations int

	// Empty discards any existing file content and starts from an empty
	// document.
	Empty bool
}

// Store holds one Document and its backing file.
type Store struct {
	file    *store.File
	enc     *store.Encryption
	info    LoadInfo
	doc     Document
	initial Document
}

// Open loads the store described by opts, creating the file if needed. On
// error nothing is returned and the file is left as it was, except that a
// missing file is created and Empty truncates.
func Open(opts Options) (*Store, error) {
	if opts.Iterations < 0 || opts.Iterations > MaxIterations {
		return nil, fmt.Errorf("%w: iterations must be in 1..%d, got %d", ErrConfig, MaxIterations, opts.Iterations)
	}
	var enc *store.Encryption
	if opts.Encryption {
		if opts.Secret == "" {
			return nil, fmt.Errorf("%w: a secret is required when encryption is enabled", ErrConfig)
		}
		enc = &store.Encryption{Secret: opts.Secret, Iterations: opts.Iterations}
		if enc.Iterations == 0 {
			enc.Iterations = DefaultIterations
		}
	}

	f, err := store.NewFile(opts.BaseDir, opts.Source)
	if err != nil {
		return nil, err
	}
	if opts.Empty {
		if err := f.Create(enc); err != nil {
			return nil, err
		}
	}
	doc, info, err := f.Load(enc)
	if err != nil {
		return nil, err
	}
	return &Store{
		file:    f,
		enc:     enc,
		info:    info,
		doc:     doc,
		initial: domain.NewDocument(),
	}, nil
}

// Path returns the resolved path of the backing file.
func (s *Store) Path() string { return s.file.Path() }

// Info reports what Open found on disk.
func (s *Store) Info() LoadInfo { return s.info }

// Init records initial as the state Reset returns to. The live document is
// replaced by a copy of initial only when it is empty or force is set.
func (s *Store) Init(initial any, force bool) error {
	d, err := asDocument(initial)
	if err != nil {
		return err
	}
	s.initial = d
	if len(s.doc) == 0 || force {
		s.doc = domain.CloneDocument(d)
	}
	return nil
}

// Reset restores the state recorded by Init, or an empty document if Init was
// never called.
func (s *Store) Reset() {
	s.doc = domain.CloneDocument(s.initial)
}

// Get returns a copy of the value at path, or def if there is none.
func (s *Store) Get(path string, def any) any {
	return docpath.Get(s.doc, path, def)
}

// Has reports whether a value exists at path, even a null or zero one.
func (s *Store) Has(path string) bool {
	return docpath.Has(s.doc, path)
}

// Set stores value at path, creating intermediate mappings.
func (s *Store) Set(path string, value any) error {
	v, err := domain.Normalize(value)
	if err != nil {
		return err
	}
	docpath.Set(s.doc, path, v)
	return nil
}

// Delete removes the value at path, if any.
func (s *Store) Delete(path string) {
	docpath.Delete(s.doc, path)
}

// Push appends value to the sequence at path, creating it if absent.
func (s *Store) Push(path string, value any) error {
	v, err := domain.Normalize(value)
	if err != nil {
		return err
	}
	return docpath.Push(s.doc, path, v)
}

// Increment adds by to the number at path; by defaults to 1.
func (s *Store) Increment(path string, by ...float64) error {
	return docpath.Increment(s.doc, path, amount(by))
}

// Decrement subtracts by from the number at path; by defaults to 1.
func (s *Store) Decrement(path string, by ...float64) error {
	return docpath.Decrement(s.doc, path, amount(by))
}

func amount(by []float64) float64 {
	if len(by) == 0 {
		return 1
	}
	return by[0]
}

// Update replaces the value at path with fn applied to a copy of it.
func (s *Store) Update(path string, fn func(current any) any) error {
	return docpath.Update(s.doc, path, fn)
}

// Find returns copies of the elements of the sequence at path that match q.
// q is a mapping of field names to literal values or *regexp.Regexp.
func (s *Store) Find(path string, q any) ([]any, error) {
	c, err := query.Compile(q)
	if err != nil {
		return nil, err
	}
	seq, _ := docpath.Lookup(s.doc, path)
	return query.Find(seq, c), nil
}

// FindOne returns a copy of the first element Find would return.
func (s *Store) FindOne(path string, q any) (any, bool, error) {
	c, err := query.Compile(q)
	if err != nil {
		return nil, false, err
	}
	seq, _ := docpath.Lookup(s.doc, path)
	v, ok := query.FindOne(seq, c)
	return v, ok, nil
}

// Keys returns the sorted keys of the mapping at path; "" is the root.
func (s *Store) Keys(path string) []string {
	return docpath.Keys(s.doc, path)
}

// GetState returns a copy of the whole document. The document is always a
// mapping: SetState rejects anything else.
func (s *Store) GetState() Document {
	return domain.CloneDocument(s.doc)
}

// SetState replaces the whole document with a copy of state.
func (s *Store) SetState(state any) error {
	d, err := asDocument(state)
	if err != nil {
		return err
	}
	s.doc = d
	return nil
}

// Clear empties the document.
func (s *Store) Clear() {
	s.doc = domain.NewDocument()
}

// Save writes the document to the backing file, encrypting it if configured.
// Concurrent saves on one Store are serialised.
func (s *Store) Save() error {
	return s.file.Save(domain.CloneDocument(s.doc), s.enc)
}

// Destroy deletes the backing file and empties the document. A later Save
// recreates the file.
func (s *Store) Destroy() error {
	if err := s.file.Remove(); err != nil {
		return err
	}
	s.doc = domain.NewDocument()
	return nil
}

// asDocument normalises v and checks that it is a mapping. The result never
// aliases v.
func asDocument(v any) (Document, error) {
	n, err := domain.Normalize(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	d, ok := n.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mapping, got %T", ErrInvalidState, v)
	}
	return d, nil
}
