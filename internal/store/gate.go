package store

import "sync"

// Gate is the readiness signal for the store: false until schema
// provisioning and catalog seeding have both completed. It is created in
// main and injected into the store and the API surface rather than held
// as package state.
type Gate struct {
	mu    sync.RWMutex
	ready bool
	subs  []chan bool
}

func NewGate() *Gate {
	return &Gate{}
}

// Ready reports the current readiness state.
func (g *Gate) Ready() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ready
}

// Subscribe registers an observer. The current state is delivered
// immediately; later transitions are multicast to every subscriber.
// Publishes never block: a slow subscriber only keeps the latest value.
func (g *Gate) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	g.mu.Lock()
	g.subs = append(g.subs, ch)
	ch <- g.ready
	g.mu.Unlock()
	return ch
}

func (g *Gate) set(ready bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ready = ready
	for _, ch := range g.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ready:
		default:
		}
	}
}
