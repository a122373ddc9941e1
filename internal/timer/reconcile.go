package timer

import "time"

// Reconciler joins a task's committed duration with any running timer's
// live delta. It owns no data and has no side effects, so it is safe to
// call at display-refresh frequency.
type Reconciler struct {
	Registry *Registry
}

func NewReconciler(reg *Registry) *Reconciler {
	return &Reconciler{Registry: reg}
}

// Elapsed returns committed seconds plus the running timer's truncated
// live delta. With no running timer it returns committed exactly.
func (r *Reconciler) Elapsed(taskID int, committed int64) int64 {
	e, running := r.Registry.Snapshot(taskID)
	if !running {
		return committed
	}
	delta := int64(r.Registry.Clock().Sub(e.StartedAt) / time.Second)
	if delta < 0 {
		delta = 0
	}
	return committed + delta
}
