package loop

import (
	"slices"
	"testing"
	"time"
)

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	a := h.Register("alice")
	b := h.Register("bob")
	if a.ID == b.ID {
		t.Fatal("duplicate ids")
	}
	if h.Count() != 2 || !slices.Equal(h.Names(), []string{"alice", "bob"}) {
		t.Errorf("count=%d names=%v", h.Count(), h.Names())
	}

	h.Unregister(a.ID)
	h.Unregister(a.ID)
	if h.Count() != 1 {
		t.Errorf("count = %d", h.Count())
	}
	if _, ok := <-a.Events; ok {
		t.Error("events channel not closed")
	}
}

func TestHubShutdownNotifiesAndWaits(t *testing.T) {
	h := NewHub()
	handle := h.Register("carol")

	go func() {
		ev := <-handle.Events
		if ev.Type == EventServerShutdown {
			h.Unregister(handle.ID)
		}
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)
	if time.Since(start) > 2*time.Second {
		t.Error("shutdown waited for the full timeout")
	}
	if h.Count() != 0 {
		t.Errorf("count = %d", h.Count())
	}
}

func TestHubShutdownTimeout(t *testing.T) {
	h := NewHub()
	h.Register("stuck")
	start := time.Now()
	h.Shutdown(50 * time.Millisecond)
	if time.Since(start) > time.Second {
		t.Error("shutdown ignored its timeout")
	}
}
