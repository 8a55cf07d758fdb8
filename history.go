package navigation

import "sync"

// History is the visible location mechanism the Router writes to and
// listens on. Locations are root relative and include the base path.
type History interface {
	PushLocation(location string) error
	ReplaceLocation(location string) error
	CurrentLocation() string
	// OnPopNavigation registers fn to be called after the user moved
	// back or forward. The callback receives the new current location.
	OnPopNavigation(fn func(location string))
}

// MemoryHistory is an in-memory History. It keeps a stack of entries
// and a cursor, like a browser session history.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners []func(string)
}

// NewMemoryHistory creates a history whose only entry is initial.
func NewMemoryHistory(initial ...string) *MemoryHistory {
	start := "/"
	if len(initial) > 0 && initial[0] != "" {
		start = initial[0]
	}
	return &MemoryHistory{
		entries: []string{start},
	}
}

// PushLocation drops any forward entries and appends location.
func (h *MemoryHistory) PushLocation(location string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], location)
	h.index = len(h.entries) - 1
	return nil
}

func (h *MemoryHistory) ReplaceLocation(location string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = location
	return nil
}

func (h *MemoryHistory) CurrentLocation() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *MemoryHistory) OnPopNavigation(fn func(location string)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Back moves one entry back. It returns false when already at the start.
func (h *MemoryHistory) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward. It returns false when already at the end.
func (h *MemoryHistory) Forward() bool {
	return h.Go(1)
}

// Go moves the cursor by delta and notifies pop listeners. Out of range
// moves are ignored.
func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	location := h.entries[next]
	listeners := make([]func(string), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(location)
	}
	return true
}

// Entries returns a copy of the history stack.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Index returns the cursor position within Entries.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}
