// arena/store.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arena

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/util"

	"github.com/brunoga/deep"
	"github.com/klauspost/compress/zstd"
)

//go:embed tests/*.json
var testsFS embed.FS

// ErrUnknownTest indicates a request for a test id that isn't in the
// Store.  The UI only offers ids it got from the Store, so hitting this
// means programmatic misuse; it is never silently mapped to a default.
var ErrUnknownTest = errors.New("unknown test id")

// Store is the ordered collection of test definitions.  It is built at
// startup from the embedded tests plus any user-provided files; further
// tests may be added later but existing ones never change.
type Store struct {
	ids   []string
	tests map[string]*TestDefinition
}

// LoadStore builds the Store from the embedded test definitions and then
// any extra files the user asked for.  Bad authored content is a fatal
// data error: it fails here, at startup, rather than rendering a diagram
// with segments quietly missing.
func LoadStore(extra []string, lg *log.Logger) (*Store, error) {
	s := &Store{tests: make(map[string]*TestDefinition)}

	names, err := fs.Glob(testsFS, "tests/*.json")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		b, err := fs.ReadFile(testsFS, name)
		if err != nil {
			return nil, err
		}
		td, err := decodeTest(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := s.add(td); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		lg.Infof("%s: loaded test %q", name, td.Id)
	}

	for _, path := range extra {
		td, err := LoadTestFile(path)
		if err != nil {
			return nil, err
		}
		if err := s.add(td); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		lg.Infof("%s: loaded test %q", path, td.Id)
	}

	return s, nil
}

// LoadTestFile reads a single test definition from a JSON file,
// transparently decompressing it if it has a .zst extension.
func LoadTestFile(path string) (*TestDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	td, err := decodeTest(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return td, nil
}

func decodeTest(b []byte) (*TestDefinition, error) {
	var td TestDefinition
	if err := json.Unmarshal(b, &td); err != nil {
		return nil, err
	}
	if err := td.validate(); err != nil {
		return nil, err
	}
	return &td, nil
}

// Add registers an already-validated test definition; its id must not
// collide with a loaded test.
func (s *Store) Add(td *TestDefinition) error {
	return s.add(td)
}

func (s *Store) add(td *TestDefinition) error {
	if _, ok := s.tests[td.Id]; ok {
		return fmt.Errorf("%s: duplicate test id", td.Id)
	}
	s.ids = append(s.ids, td.Id)
	s.tests[td.Id] = td
	return nil
}

// TestIds returns the test ids in load order.
func (s *Store) TestIds() []string {
	return util.DuplicateSlice(s.ids)
}

// TestName returns the display name for the given test id, or the id
// itself if it is unknown.
func (s *Store) TestName(id string) string {
	if td, ok := s.tests[id]; ok {
		return td.Name
	}
	return id
}

// GetTest returns the definition for the given id.  The result is a deep
// copy so callers can't corrupt the Store's authored content.
func (s *Store) GetTest(id string) (*TestDefinition, error) {
	td, ok := s.tests[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownTest)
	}
	return deep.MustCopy(td), nil
}
