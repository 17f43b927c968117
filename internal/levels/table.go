// Package levels provides the static level table: a read-only lookup by
// index returning grid dimensions and a piece count for each puzzle.
package levels

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// Level describes one puzzle's board.
type Level struct {
	Pieces    int   `yaml:"pieces"`
	Columns   int   `yaml:"columns"`
	Rows      int   `yaml:"rows"`
	ImageSeed int64 `yaml:"imageSeed"`
}

// Table is an ordered list of levels.
type Table struct {
	levels []Level
}

type tableFile struct {
	Levels []Level `yaml:"levels"`
}

// Parse builds a table from YAML data, validating each entry.
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, fmt.Errorf("levels: no levels defined")
	}
	for i, l := range file.Levels {
		if l.Columns <= 0 || l.Rows <= 0 {
			return nil, fmt.Errorf("levels: level %d has invalid grid %dx%d", i, l.Columns, l.Rows)
		}
		if l.Pieces != l.Columns*l.Rows {
			return nil, fmt.Errorf("levels: level %d piece count %d does not match %dx%d grid", i, l.Pieces, l.Columns, l.Rows)
		}
	}
	return &Table{levels: file.Levels}, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table parsed from the embedded level list.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultLevelsYAML)
		if err != nil {
			panic(fmt.Sprintf("levels: embedded defaults invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Get returns the level at index, or false when the index is out of range.
func (t *Table) Get(index int) (Level, bool) {
	if index < 0 || index >= len(t.levels) {
		return Level{}, false
	}
	return t.levels[index], true
}

// GetWrapped returns the level at index modulo the table size, so the
// play loop never runs out of puzzles once the table is exhausted.
func (t *Table) GetWrapped(index int) Level {
	if index < 0 {
		index = 0
	}
	return t.levels[index%len(t.levels)]
}

// Total returns the number of distinct levels in the table.
func (t *Table) Total() int {
	return len(t.levels)
}
