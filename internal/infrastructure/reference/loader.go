// Package reference loads the teacher allocation and subject alias tables
// from a YAML file.
//
// File layout:
//
//	subject_aliases:
//	  ধর্ম: ধর্ম ও নৈতিক শিক্ষা
//	teachers:
//	  আনিছুর:
//	    গণিত: [ষষ্ঠ, সপ্তম]
package reference

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/alem-hub/school-core/internal/domain/routine"
	"github.com/alem-hub/school-core/internal/domain/shared"
)

// file mirrors the YAML document.
type file struct {
	SubjectAliases map[string]string              `yaml:"subject_aliases"`
	Teachers       map[string]map[string][]string `yaml:"teachers"`
}

// Data is the parsed reference data, ready for the routine analyzer.
type Data struct {
	Allocation *routine.Allocation
	Normalizer *routine.SubjectNormalizer

	// Version identifies the file contents. Cached reports are keyed on it,
	// so editing the file invalidates them.
	Version string
}

// Empty returns reference data with no aliases and no allocations.
func Empty() *Data {
	return &Data{Version: "none"}
}

// Load reads and parses the reference file at path.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.WrapError("reference", "Load", shared.ErrReferenceNotFound, path, err)
		}
		return nil, fmt.Errorf("read reference file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds reference data from a YAML document. Unknown top-level keys
// are rejected so a misspelt section does not silently disable checks.
func Parse(raw []byte) (*Data, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, shared.WrapError("reference", "Parse", shared.ErrReferenceFormat, "decode yaml", err)
	}

	normalizer, err := routine.NewSubjectNormalizer(f.SubjectAliases)
	if err != nil {
		return nil, err
	}
	allocation, err := routine.NewAllocation(f.Teachers, normalizer)
	if err != nil {
		return nil, err
	}

	return &Data{
		Allocation: allocation,
		Normalizer: normalizer,
		Version:    fmt.Sprintf("%016x", xxhash.Sum64(raw)),
	}, nil
}
