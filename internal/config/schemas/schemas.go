// Package schemas provides the built-in document schema.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/nodeedit/internal/config/loader"
	"github.com/dshills/nodeedit/internal/engine/model"
)

//go:embed default.toml
var defaultTOML string

var (
	defaultOnce   sync.Once
	defaultSchema *model.Schema
	defaultErr    error
)

// Default returns the built-in rich-text schema: paragraphs, headings,
// blockquotes, lists, tables, code blocks, rules, images, mentions and hard
// breaks, with strong/em/code/link marks. The schema is compiled once.
func Default() (*model.Schema, error) {
	defaultOnce.Do(func() {
		raw, err := loader.NewTOMLLoader("").LoadFromReader(strings.NewReader(defaultTOML))
		if err != nil {
			defaultErr = fmt.Errorf("loading default schema: %w", err)
			return
		}
		defaultSchema, defaultErr = loader.BuildSchema(raw)
	})
	return defaultSchema, defaultErr
}

// MustDefault is like Default but panics on error.
func MustDefault() *model.Schema {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}
