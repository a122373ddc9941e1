// Package store holds the authoritative in-session task collection.
// It enforces nothing beyond identity uniqueness; semantic validation
// lives in the lifecycle controller. Every mutation notifies subscribed
// observers so presentation re-derives its groupings instead of callers
// re-rendering by hand.
package store

import (
	"sort"
	"sync"

	"taskboard/internal/model"
)

type EventKind int

const (
	// EventUpserted fires when a single task is inserted or replaced.
	EventUpserted EventKind = iota
	// EventRemoved fires when a task is deleted.
	EventRemoved
	// EventReloaded fires when the whole collection is replaced from a fetch.
	EventReloaded
)

// Event describes one store mutation. TaskID is zero for EventReloaded.
type Event struct {
	Kind   EventKind
	TaskID int
}

// Store is safe for concurrent use; the ticker and poller read it from
// their own goroutines.
type Store struct {
	mu        sync.RWMutex
	tasks     []model.Task
	labels    map[string]model.Label
	observers map[int]func(Event)
	nextSub   int
}

func New() *Store {
	return &Store{
		labels:    make(map[string]model.Label),
		observers: make(map[int]func(Event)),
	}
}

// Subscribe registers an observer for store mutations and returns an
// unsubscribe func. Observers are called synchronously after the
// mutation is applied, outside the store lock.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(e Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

// List returns all tasks ordered by id. The result is a deep copy.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return model.Task{}, false
}

// Upsert inserts or replaces a task by id.
func (s *Store) Upsert(task model.Task) {
	s.mu.Lock()
	replaced := false
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.tasks = append(s.tasks, task.Clone())
		sort.Slice(s.tasks, func(i, j int) bool { return s.tasks[i].ID < s.tasks[j].ID })
	}
	s.rememberLabelsLocked(task.Labels)
	s.mu.Unlock()
	s.notify(Event{Kind: EventUpserted, TaskID: task.ID})
}

// Remove deletes a task by id. Removing an unknown id is a no-op.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	found := false
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.notify(Event{Kind: EventRemoved, TaskID: id})
	}
}

// ReplaceAll swaps in a freshly fetched task collection.
func (s *Store) ReplaceAll(tasks []model.Task) {
	s.mu.Lock()
	s.tasks = make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		s.tasks = append(s.tasks, t.Clone())
		s.rememberLabelsLocked(t.Labels)
	}
	sort.Slice(s.tasks, func(i, j int) bool { return s.tasks[i].ID < s.tasks[j].ID })
	s.mu.Unlock()
	s.notify(Event{Kind: EventReloaded})
}

// Labels returns the known shared label namespace sorted by name.
func (s *Store) Labels() []model.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Label, 0, len(s.labels))
	for _, l := range s.labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Label looks up a label by name.
func (s *Store) Label(name string) (model.Label, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.labels[name]
	return l, ok
}

// RememberLabels merges labels into the shared namespace. An existing
// name keeps its original color.
func (s *Store) RememberLabels(labels []model.Label) {
	s.mu.Lock()
	s.rememberLabelsLocked(labels)
	s.mu.Unlock()
}

func (s *Store) rememberLabelsLocked(labels []model.Label) {
	for _, l := range labels {
		if _, exists := s.labels[l.Name]; !exists {
			s.labels[l.Name] = l
		}
	}
}
