package research

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressInterval is how often a "still working" notice is printed while
// waiting on the model.
const ProgressInterval = 15 * time.Second

// Progress prints periodic elapsed-time notices until stopped.
type Progress struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartProgress begins printing to w every interval, measured from start.
// The first notice comes one full interval after the call. The ticker also
// stops when ctx is done.
func StartProgress(ctx context.Context, w io.Writer, start time.Time, interval time.Duration) *Progress {
	p := &Progress{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick and Stop can be ready together; Stop wins.
				select {
				case <-p.stop:
					return
				default:
				}
				fmt.Fprintf(w, "⏳ Still working... %ds elapsed\n", int(time.Since(start).Seconds()))
			}
		}
	}()

	return p
}

// Stop halts the ticker and waits for it to exit, so nothing is printed
// after Stop returns. It is safe to call more than once.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}
