package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/survival-engine/pkg/content"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [content-dir]\n", os.Args[0])
		os.Exit(1)
	}

	var (
		tables *content.Tables
		err    error
		source = "embedded content"
	)
	if len(os.Args) == 2 {
		source = os.Args[1]
		if err := checkFilenames(source); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		tables, err = content.LoadDir(source)
	} else {
		tables, err = content.Load()
	}

	fmt.Printf("Validating %s...\n", source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	problems := tables.Problems()
	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed with %d problem(s):\n", len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}

	fmt.Printf("Content is valid! %d story steps, %d actions, %d events, %d disasters.\n",
		len(tables.Story), len(tables.Actions), len(tables.Events), len(tables.Disasters))
}

var contentFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*\.yaml$`)

// checkFilenames rejects content files that are not lowercase snake_case
// with a .yaml extension. A .yml file would otherwise be skipped silently.
func checkFilenames(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var bad []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if !contentFilenameRegex.MatchString(name) {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("content files must be lowercase snake_case .yaml (e.g. my_events.yaml): %s", strings.Join(bad, ", "))
	}
	return nil
}
