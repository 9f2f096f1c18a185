package tracker

import "sync"

// Tracker holds the single task each user is currently attempting.
// It is process-local by design: losing it only forces a re-scan, never
// the loss of completion credit, so nothing here touches durable storage.
type Tracker struct {
	mu     sync.RWMutex
	active map[int64]string
}

func New() *Tracker {
	return &Tracker{
		active: make(map[int64]string),
	}
}

// Set records taskID as the user's active assignment, silently replacing
// any previous one.
func (t *Tracker) Set(userID int64, taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[userID] = taskID
}

// Get returns the user's active task id, if any.
func (t *Tracker) Get(userID int64) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	taskID, ok := t.active[userID]
	return taskID, ok
}

// Clear drops the user's active assignment. Clearing an absent entry is a no-op.
func (t *Tracker) Clear(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, userID)
}

// Len returns the number of users with an active assignment.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.active)
}
