package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Load returns the tables built into the binary.
func Load() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded content: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir reads every .yaml file in dir.
func LoadDir(dir string) (*Tables, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every .yaml file at the root of fsys, in name order, and
// merges them into one set of tables. Unknown keys are rejected so typos in
// content files surface as errors.
func LoadFS(fsys fs.FS) (*Tables, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list content files: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no content files found")
	}
	sort.Strings(names)

	tables := &Tables{}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file %s: %w", name, err)
		}
		doc, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse content file %s: %w", path.Base(name), err)
		}
		tables.merge(doc)
	}
	return tables, nil
}

func decode(data []byte) (Tables, error) {
	var doc Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Tables{}, err
	}
	return doc, nil
}
