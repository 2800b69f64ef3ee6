// Package analysis runs the AI review pipeline as background jobs and
// tracks their progress.
package analysis

import "sync"

// Progress is the live state of a running analysis job.
type Progress struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// Tracker holds in-flight job progress, keyed by video ID. It is the
// authoritative source while a job runs; completed state lives on the
// video row.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]Progress
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]Progress)}
}

// Start registers a job for the video. Returns false if one is already
// running, which makes it the concurrency guard for re-analysis requests.
func (t *Tracker) Start(videoID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, running := t.jobs[videoID]; running {
		return false
	}
	t.jobs[videoID] = Progress{Percent: 0, Stage: "Queued"}
	return true
}

// Set updates the progress of a running job.
func (t *Tracker) Set(videoID string, percent int, stage string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, running := t.jobs[videoID]; running {
		t.jobs[videoID] = Progress{Percent: percent, Stage: stage}
	}
}

// Get returns the progress of a running job, if one exists.
func (t *Tracker) Get(videoID string) (Progress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.jobs[videoID]
	return p, ok
}

// Finish removes the job. Final state is read from the video row afterwards.
func (t *Tracker) Finish(videoID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, videoID)
}
