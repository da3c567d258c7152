package domain

import (
	"fmt"
	"sync"
	"time"
)

// OrderNumbers hands out FTL order numbers. Numbers are unique and increasing
// within a process: FTL-<yyyymmddhhmmss>-<seq>, where seq restarts every second.
type OrderNumbers struct {
	mu   sync.Mutex
	last string
	seq  int
}

func (o *OrderNumbers) Next(now time.Time) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	stamp := now.UTC().Format("20060102150405")
	if stamp <= o.last {
		// clock went backwards or same second: stay on the last stamp
		stamp = o.last
		o.seq++
	} else {
		o.last = stamp
		o.seq = 1
	}
	return fmt.Sprintf("FTL-%s-%03d", stamp, o.seq)
}
