// Package scriptstore is an in-memory, name-keyed store of TypeScript
// script content, backed by a map like the rest of this codebase's
// in-process caches (no persistence layer — scripts die with the
// process).
package scriptstore

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/davetashner/datocms-mcp/internal/scriptvalidate"
)

// Script is the stored record.
type Script struct {
	Name    string
	Content string
}

// Edit is one {oldStr, newStr} replacement applied by Update.
type Edit struct {
	OldStr string
	NewStr string
}

var nameRE = regexp.MustCompile(`^script://[A-Za-z0-9_./-]+\.ts$`)

// Store is an in-memory name -> Script map. The zero value is unusable;
// use New.
type Store struct {
	mu      sync.Mutex
	scripts map[string]*Script
}

// New returns an empty Store.
func New() *Store {
	return &Store{scripts: make(map[string]*Script)}
}

// Create validates name and uniqueness, always saves the script regardless
// of structural-validation outcome, and returns the validation result so
// the caller can decide whether to surface it. auditID is a fresh
// correlation id for logging, minted per call.
func (s *Store) Create(name, content string) (scriptvalidate.Result, string, error) {
	auditID := uuid.NewString()

	if !nameRE.MatchString(name) {
		return scriptvalidate.Result{}, auditID, fmt.Errorf("scriptstore: name %q must match script://<path>.ts", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.scripts[name]; exists {
		return scriptvalidate.Result{}, auditID, fmt.Errorf("scriptstore: script %q already exists", name)
	}

	result := scriptvalidate.Validate(content)
	s.scripts[name] = &Script{Name: name, Content: content}
	return result, auditID, nil
}

// View returns the current content of name.
func (s *Store) View(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scripts[name]
	if !ok {
		return "", fmt.Errorf("scriptstore: not found: %q", name)
	}
	return sc.Content, nil
}

// Update applies edits in order against name's content and always
// persists the final content, regardless of the re-run structural
// validation's outcome. Each edit's OldStr must occur exactly once in the
// content *at the time it is processed* — an earlier edit may create or
// remove the match a later edit depends on.
func (s *Store) Update(name string, edits []Edit) (string, scriptvalidate.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scripts[name]
	if !ok {
		return "", scriptvalidate.Result{}, fmt.Errorf("scriptstore: not found: %q", name)
	}

	content := sc.Content
	for i, edit := range edits {
		idx := i + 1 // 1-based, for error messages
		count := strings.Count(content, edit.OldStr)
		switch {
		case count == 0:
			return "", scriptvalidate.Result{}, fmt.Errorf("scriptstore: edit %d: String not found", idx)
		case count > 1:
			return "", scriptvalidate.Result{}, fmt.Errorf("scriptstore: edit %d: must be unique, found %d occurrences", idx, count)
		}
		content = strings.Replace(content, edit.OldStr, edit.NewStr, 1)
	}

	result := scriptvalidate.Validate(content)
	sc.Content = content
	return content, result, nil
}
