package terminal

import (
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// ResizeNotifier records that the window changed size. The signal handler
// only raises a flag; the main loop polls it between key reads and does the
// actual work there.
type ResizeNotifier struct {
	pending atomic.Bool
	sigs    chan os.Signal
	done    chan struct{}
}

// NotifyResize starts watching for SIGWINCH.
func NotifyResize() *ResizeNotifier {
	n := &ResizeNotifier{
		sigs: make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(n.sigs, unix.SIGWINCH)
	go n.watch()
	return n
}

func (n *ResizeNotifier) watch() {
	for {
		select {
		case <-n.sigs:
			n.pending.Store(true)
		case <-n.done:
			return
		}
	}
}

// Pending reports whether a resize happened since the last call and clears
// the flag.
func (n *ResizeNotifier) Pending() bool {
	return n.pending.Swap(false)
}

// Stop stops watching for SIGWINCH.
func (n *ResizeNotifier) Stop() {
	signal.Stop(n.sigs)
	close(n.done)
}
