//go:build unix

package shutdown

import (
	"syscall"
	"testing"
	"time"
)

func TestListenShutsDownOnSignal(t *testing.T) {
	rec := &recorder{}
	m := NewManager(nil)
	m.Register("c", rec.add("c"))
	m.Listen()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("no shutdown after SIGTERM")
	}
	// Done closes before components run; wait for the sequence to finish.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rec.mu.Lock()
		n := len(rec.order)
		rec.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("component not shut down")
}
