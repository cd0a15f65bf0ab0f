// Package workerpool bounds how many requests are served at once.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrPoolFull   = errors.New("request pool is full")
	ErrPoolClosed = errors.New("request pool is closed")
)

type Pool struct {
	slots chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func New(poolSize int) *Pool {
	return &Pool{
		slots: make(chan struct{}, poolSize),
	}
}

// Acquire takes a slot without blocking. Every successful Acquire must be
// paired with Release.
func (p *Pool) Acquire() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.slots <- struct{}{}:
		p.wg.Add(1)
		return nil
	default:
		return ErrPoolFull
	}
}

func (p *Pool) Release() {
	<-p.slots
	p.wg.Done()
}

func (p *Pool) InFlight() int {
	return len(p.slots)
}

// Shutdown refuses new work and waits for held slots to be released.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
