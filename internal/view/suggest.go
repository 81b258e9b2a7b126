package view

import (
	"strings"
	"sync"
	"time"
)

const (
	MaxSuggestions = 8
	// DefaultBlurDelay leaves time for a click on a suggestion to land before
	// the list is hidden.
	DefaultBlurDelay = 150 * time.Millisecond
)

// Suggestions returns the distinct names and categories in items that contain
// term, in first-seen order. limit <= 0 or above MaxSuggestions is capped at
// MaxSuggestions.
func Suggestions[T any](items []T, fields Fields[T], term string, limit int) []string {
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(items) == 0 {
		return []string{}
	}

	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	add := func(v string) bool {
		key := strings.ToLower(v)
		if v == "" || seen[key] || !strings.Contains(key, term) {
			return false
		}
		seen[key] = true
		out = append(out, v)
		return len(out) == limit
	}

	for _, item := range items {
		if fields.Name != nil && add(fields.Name(item)) {
			return out
		}
		if fields.Categories == nil {
			continue
		}
		for _, c := range fields.Categories(item) {
			if add(c) {
				return out
			}
		}
	}
	return out
}

// Autocomplete tracks the search box of a view: the current term and whether
// the suggestion list is showing.
type Autocomplete[T any] struct {
	mu      sync.Mutex
	items   []T
	fields  Fields[T]
	delay   time.Duration
	term    string
	visible bool
	blur    *time.Timer
}

func NewAutocomplete[T any](fields Fields[T], delay time.Duration) *Autocomplete[T] {
	if delay <= 0 {
		delay = DefaultBlurDelay
	}
	return &Autocomplete[T]{fields: fields, delay: delay}
}

// SetItems replaces the collection suggestions are drawn from.
func (a *Autocomplete[T]) SetItems(items []T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = items
}

// Type records a keystroke and shows the list when there is a term.
func (a *Autocomplete[T]) Type(term string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopBlur()
	a.term = term
	a.visible = strings.TrimSpace(term) != ""
}

func (a *Autocomplete[T]) Focus() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopBlur()
	a.visible = strings.TrimSpace(a.term) != ""
}

// Blur hides the list after the configured delay.
func (a *Autocomplete[T]) Blur() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopBlur()
	a.blur = time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		a.visible = false
		a.blur = nil
		a.mu.Unlock()
	})
}

// Select takes a suggestion as the term and hides the list at once.
func (a *Autocomplete[T]) Select(value string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopBlur()
	a.term = value
	a.visible = false
	return value
}

func (a *Autocomplete[T]) Term() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.term
}

func (a *Autocomplete[T]) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// Suggestions is empty while the list is hidden.
func (a *Autocomplete[T]) Suggestions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.visible {
		return []string{}
	}
	return Suggestions(a.items, a.fields, a.term, MaxSuggestions)
}

func (a *Autocomplete[T]) stopBlur() {
	if a.blur != nil {
		a.blur.Stop()
		a.blur = nil
	}
}
