// Package prompt loads categorized text templates from a directory
// tree and performs per-call variable substitution. Every component
// that talks to a language model renders its prompts through here.
package prompt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/pkg/log"
)

// Store caches parsed templates keyed by (category, name). Templates
// are parsed once per Load; substitution happens fresh on every Get so
// variable values are never baked into the cache.
type Store struct {
	root string

	mu    sync.RWMutex
	cache map[string]map[string]*Template
}

// Load scans root for category subdirectories of .txt templates.
// A file that fails to read is skipped with a warning; only a missing
// or unreadable root aborts the load.
func Load(ctx context.Context, root string) (*Store, error) {
	s := &Store{root: root}
	cache, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

func (s *Store) scan(ctx context.Context) (map[string]map[string]*Template, error) {
	logger := log.FromCtx(ctx)

	categories, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &core.LoadError{Root: s.root, Err: err}
	}

	cache := make(map[string]map[string]*Template)
	loaded := 0

	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		category := cat.Name()

		files, err := os.ReadDir(filepath.Join(s.root, category))
		if err != nil {
			logger.Warn().Err(err).Str("category", category).Msg("skipping unreadable prompt category")
			continue
		}

		templates := make(map[string]*Template)
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".txt" {
				continue
			}

			path := filepath.Join(s.root, category, f.Name())
			raw, err := os.ReadFile(path)
			if err != nil {
				logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable prompt file")
				continue
			}

			name := strings.TrimSuffix(f.Name(), ".txt")
			text := strings.TrimSpace(string(raw))
			templates[name] = &Template{
				Category:  category,
				Name:      name,
				Path:      path,
				Raw:       text,
				Variables: declaredVariables(text),
			}
			loaded++
		}
		cache[category] = templates
	}

	logger.Debug().Int("templates", loaded).Int("categories", len(cache)).Msg("prompts loaded")
	return cache, nil
}

// Require verifies that each named category exists and holds at least
// one template. Callers that depend on a category check it up front so
// an unrelated empty directory never aborts a load.
func (s *Store) Require(categories ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range categories {
		if len(s.cache[category]) == 0 {
			return &core.LoadError{
				Root: s.root,
				Err:  fmt.Errorf("required category %q has no templates", category),
			}
		}
	}
	return nil
}

// Get renders the (category, name) template with vars substituted.
// Missing placeholders fail with a MissingVariableError naming all of
// them; supplied values without a matching placeholder only warn.
func (s *Store) Get(ctx context.Context, category, name string, vars map[string]string) (string, error) {
	s.mu.RLock()
	tpl, err := s.lookup(category, name)
	s.mu.RUnlock()
	if err != nil {
		return "", err
	}

	rendered, missing, unused := tpl.substitute(vars)
	if len(missing) > 0 {
		return "", &core.MissingVariableError{Category: category, Name: name, Variables: missing}
	}
	if len(unused) > 0 {
		log.FromCtx(ctx).Warn().
			Str("prompt", category+"/"+name).
			Strs("variables", unused).
			Msg("supplied variables have no placeholder")
	}
	return rendered, nil
}

func (s *Store) lookup(category, name string) (*Template, error) {
	templates, ok := s.cache[category]
	if !ok {
		return nil, &core.NotFoundError{Category: category}
	}
	tpl, ok := templates[name]
	if !ok {
		return nil, &core.NotFoundError{Category: category, Name: name}
	}
	return tpl, nil
}

// Categories lists loaded category names, sorted.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.cache))
	for category := range s.cache {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Prompts lists template names within a category, sorted.
func (s *Store) Prompts(category string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates, ok := s.cache[category]
	if !ok {
		return nil, &core.NotFoundError{Category: category}
	}

	out := make([]string, 0, len(templates))
	for name := range templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Info returns a copy of the template's metadata: declared variables
// and the source path it was loaded from.
func (s *Store) Info(category, name string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, err := s.lookup(category, name)
	if err != nil {
		return Template{}, err
	}
	return *tpl, nil
}

// Reload rescans the prompt root and atomically replaces the cache.
// Concurrent readers observe either the old or the new mapping.
func (s *Store) Reload(ctx context.Context) error {
	cache, err := s.scan(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = cache
	s.mu.Unlock()
	return nil
}
