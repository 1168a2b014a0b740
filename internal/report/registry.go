//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Question)
	mu       sync.RWMutex
)

// Register adds a question to the catalog.
func Register(q Question) {
	mu.Lock()
	defer mu.Unlock()
	registry[q.Name] = q
}

// Get retrieves a question by name.
func Get(name string) (Question, error) {
	mu.RLock()
	defer mu.RUnlock()

	q, ok := registry[name]
	if !ok {
		return Question{}, fmt.Errorf("unknown question: %s", name)
	}
	return q, nil
}

// List returns all question names in catalog order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all questions in catalog order.
func All() []Question {
	questions := make([]Question, 0, len(registry))
	for _, name := range List() {
		mu.RLock()
		q := registry[name]
		mu.RUnlock()
		questions = append(questions, q)
	}
	return questions
}
