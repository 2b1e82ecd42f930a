package services

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"users-api/internal/infrastructure/mq"
)

// newTestCounter is not registered, so every test can have its own.
func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "test", Name: "general_counters"},
		[]string{"result"},
	)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *recordingPublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) PublisherWorker(ctx context.Context) { <-ctx.Done() }
