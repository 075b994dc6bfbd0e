package pipeline

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Generator produces process-unique request IDs for logs and events.
type Generator struct {
	counter uint64
	prefix  string
}

// NewGenerator creates a generator. IDs embed the process start time so
// they remain distinguishable across restarts.
func NewGenerator() *Generator {
	return &Generator{prefix: time.Now().UTC().Format("20060102T150405")}
}

// Next returns the next request ID.
func (g *Generator) Next() string {
	n := atomic.AddUint64(&g.counter, 1)
	return fmt.Sprintf("req-%s-%d", g.prefix, n)
}
