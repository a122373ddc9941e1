// Package timer keeps running-timer bookkeeping separate from task
// bookkeeping. The registry is persisted on its own so a restart resumes
// a running timer with its original start instant, and committed task
// time is never mixed into the persisted registry record.
package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRunning = errors.New("timer already running for task")
	ErrNotRunning     = errors.New("no timer running for task")
)

// Entry is one persisted running timer. Owner identifies the process
// that started it so two concurrent processes sharing the registry file
// do not silently restart each other's timers. The check is read-then-
// write, not atomic; the remaining window is an accepted limitation of
// the shared-file model.
type Entry struct {
	StartedAt time.Time `json:"started_at"`
	Owner     string    `json:"owner"`
}

type registryFile struct {
	Timers map[int]Entry `json:"timers"`
}

// Registry maps task ids to running-timer entries, persisted as a single
// JSON file with atomic writes. Clock is injectable for tests and
// defaults to time.Now.
type Registry struct {
	mu    sync.Mutex
	path  string
	owner string
	Clock func() time.Time

	timers map[int]Entry
}

// NewRegistry loads (or initializes) the registry at path. A corrupt
// file is renamed aside to path+".corrupt" and replaced with an empty
// registry rather than failing startup.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:   path,
		owner:  uuid.NewString(),
		Clock:  time.Now,
		timers: make(map[int]Entry),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.timers = make(map[int]Entry)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading timer registry %s: %w", r.path, err)
	}
	var rf registryFile
	if err := json.Unmarshal(data, &rf); err != nil {
		// Back up the corrupt file and start fresh; losing a running
		// timer beats refusing to start.
		backup := r.path + ".corrupt"
		_ = os.Rename(r.path, backup)
		r.timers = make(map[int]Entry)
		return nil
	}
	if rf.Timers == nil {
		rf.Timers = make(map[int]Entry)
	}
	r.timers = rf.Timers
	return nil
}

func (r *Registry) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("creating timer registry directory: %w", err)
	}
	data, err := json.MarshalIndent(registryFile{Timers: r.timers}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling timer registry: %w", err)
	}
	// Atomic write: write to temp file then rename.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing timer registry temp file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming timer registry temp file: %w", err)
	}
	return nil
}

// Start records a timer for the task at the current clock instant and
// persists the registry. It reloads the file first so a timer started by
// another process is seen; a held slot returns ErrAlreadyRunning.
func (r *Registry) Start(taskID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return err
	}
	if _, running := r.timers[taskID]; running {
		return ErrAlreadyRunning
	}
	r.timers[taskID] = Entry{StartedAt: r.Clock(), Owner: r.owner}
	return r.save()
}

// Stop removes the task's timer and returns the elapsed whole seconds,
// truncated (never rounded), clamped at zero against clock skew. The
// caller owns adding the delta to the task's committed total; Stop never
// touches task state. ErrNotRunning is returned with a zero delta when
// no timer exists.
func (r *Registry) Stop(taskID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return 0, err
	}
	e, running := r.timers[taskID]
	if !running {
		return 0, ErrNotRunning
	}
	delta := int64(r.Clock().Sub(e.StartedAt) / time.Second)
	if delta < 0 {
		delta = 0
	}
	delete(r.timers, taskID)
	if err := r.save(); err != nil {
		return 0, err
	}
	return delta, nil
}

// Discard removes the task's timer without computing a delta. Used when
// a task is deleted so no registry entry survives its task.
func (r *Registry) Discard(taskID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return err
	}
	if _, running := r.timers[taskID]; !running {
		return nil
	}
	delete(r.timers, taskID)
	return r.save()
}

// Resume reinstates an entry verbatim. The stop path uses it to roll
// back when the commit of a stopped timer's delta fails remotely, so no
// elapsed time is lost and the user can retry.
func (r *Registry) Resume(taskID int, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return err
	}
	r.timers[taskID] = e
	return r.save()
}

// Snapshot returns the current entry for the task, if any.
func (r *Registry) Snapshot(taskID int) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.timers[taskID]
	return e, ok
}

// Running reports whether a timer exists for the task.
func (r *Registry) Running(taskID int) bool {
	_, ok := r.Snapshot(taskID)
	return ok
}

// RunningIDs returns the ids of all tasks with a running timer.
func (r *Registry) RunningIDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	return ids
}
