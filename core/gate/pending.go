package gate

import "sync"

// Pending remembers what the visitor wanted before a prompt interrupted them.
// It holds at most one intent and is never persisted.
type Pending struct {
	mu     sync.Mutex
	intent *Intent
}

// Set replaces the pending intent.
func (p *Pending) Set(intent Intent) {
	p.mu.Lock()
	p.intent = &intent
	p.mu.Unlock()
}

// Take returns and clears the pending intent.
func (p *Pending) Take() (Intent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.intent == nil {
		return Intent{}, false
	}
	intent := *p.intent
	p.intent = nil
	return intent, true
}

// Clear drops the pending intent, e.g. when a prompt is dismissed.
func (p *Pending) Clear() {
	p.mu.Lock()
	p.intent = nil
	p.mu.Unlock()
}
