package pipeline

import "sync"

// Summary is a point-in-time copy of accumulated batch totals.
type Summary struct {
	Files         int `json:"files" yaml:"files"`
	Failed        int `json:"failed" yaml:"failed"`
	Modifications int `json:"modifications" yaml:"modifications"`
}

// Totals accumulates batch outcomes. The accumulator is caller-owned:
// nothing in the pipeline holds one implicitly. Add is safe for
// concurrent use so results may be folded in from parallel workers.
type Totals struct {
	mu      sync.Mutex
	summary Summary
}

// Add folds one document result into the totals.
func (t *Totals) Add(r FileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r.Failed() {
		t.summary.Failed++
		return
	}
	t.summary.Files++
	t.summary.Modifications += r.Modifications
}

// Reset clears all counters.
func (t *Totals) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary = Summary{}
}

// Snapshot returns a copy of the current totals.
func (t *Totals) Snapshot() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}
