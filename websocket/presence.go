// file: websocket/presence.go
package websocket

import (
	"sort"
	"sync"
	"time"

	"mentora-hub/logger"
)

// Presence tracks which admins currently have the dashboard open, by the
// last heartbeat seen from each.
type Presence struct {
	mu             sync.Mutex
	activeSessions map[string]time.Time
	now            func() time.Time
}

// NewPresence initializes a heartbeat tracker.
func NewPresence() *Presence {
	return &Presence{activeSessions: make(map[string]time.Time), now: time.Now}
}

// UpdateHeartbeat marks an admin as active.
func (p *Presence) UpdateHeartbeat(uid string) {
	if uid == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeSessions[uid] = p.now()
	logger.Debug.Printf("[Presence.UpdateHeartbeat] %s updated", uid)
}

// Remove forgets an admin immediately.
func (p *Presence) Remove(uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.activeSessions, uid)
}

// CleanupInactiveSessions drops admins silent for longer than timeout and
// returns who was removed.
func (p *Presence) CleanupInactiveSessions(timeout time.Duration) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var removed []string
	now := p.now()
	for uid, lastSeen := range p.activeSessions {
		if now.Sub(lastSeen) > timeout {
			logger.Info.Printf("[Presence.CleanupInactiveSessions] Removing inactive admin=%s (timeout=%v)", uid, timeout)
			delete(p.activeSessions, uid)
			removed = append(removed, uid)
		}
	}
	sort.Strings(removed)
	return removed
}

// Active lists admins with a recent heartbeat, sorted.
func (p *Presence) Active() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.activeSessions))
	for uid := range p.activeSessions {
		out = append(out, uid)
	}
	sort.Strings(out)
	return out
}
