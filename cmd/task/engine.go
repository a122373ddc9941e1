package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/lifecycle"
	"taskboard/internal/model"
	"taskboard/internal/prefs"
	"taskboard/internal/store"
	"taskboard/internal/sync"
	"taskboard/internal/timer"
)

// app wires the task engine together for one CLI invocation: config,
// local timer registry, session store, sync gateway and controller.
type app struct {
	cfg      *config.Config
	prefs    prefs.Preferences
	store    *store.Store
	registry *timer.Registry
	ctrl     *lifecycle.Controller
}

func newApp() (*app, error) {
	cfg := config.Load()

	p, err := prefs.Load(prefsPath(cfg))
	if err != nil {
		return nil, err
	}

	reg, err := timer.NewRegistry(filepath.Join(cfg.DataDir, "timers.json"))
	if err != nil {
		return nil, err
	}

	st := store.New()
	ctrl := lifecycle.NewController(st, reg, sync.NewClient(cfg.APIBaseURL))

	a := &app{cfg: cfg, prefs: p, store: st, registry: reg, ctrl: ctrl}
	ctrl.OnTransition(a.celebrate)
	return a, nil
}

// refreshed builds the app and loads the current task collection.
func refreshed() (*app, context.Context, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	ctx := context.Background()
	if err := a.ctrl.Refresh(ctx); err != nil {
		return nil, nil, err
	}
	return a, ctx, nil
}

// celebrate fires once per transition into the complete column.
// Leaving complete is unremarkable.
func (a *app) celebrate(tr lifecycle.Transition) {
	if tr.To != model.StatusComplete {
		return
	}
	bell := ""
	if a.prefs.SoundEnabled {
		bell = "\a"
	}
	fmt.Printf("🎉 Task %d complete!%s\n", tr.TaskID, bell)
}

func prefsPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "prefs.json")
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseStepIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid step index %q", arg)
	}
	return i, nil
}

// parseLabel parses "name:color" into a label.
func parseLabel(arg string) (model.Label, error) {
	name, color, found := strings.Cut(arg, ":")
	if !found || name == "" || color == "" {
		return model.Label{}, fmt.Errorf("label %q must be name:color (colors: %s)",
			arg, strings.Join(model.LabelColors, ", "))
	}
	return model.Label{Name: name, Color: color}, nil
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusNotStarted:
		return "Not Started"
	case model.StatusInProgress:
		return "In Progress"
	case model.StatusInReview:
		return "In Review"
	case model.StatusBlocked:
		return "Blocked"
	case model.StatusComplete:
		return "Complete"
	}
	return string(s)
}

// parseStatus accepts the wire form ("in_progress") and a few forgiving
// variants ("in-progress", "In Progress").
func parseStatus(arg string) (model.Status, error) {
	normalized := strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(arg))
	s := model.Status(normalized)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q (one of: not_started, in_progress, in_review, blocked, complete)", arg)
	}
	return s, nil
}

func formatDue(due *string) string {
	if due == nil {
		return ""
	}
	return " (due " + *due + ")"
}
