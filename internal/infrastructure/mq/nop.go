package mq

import "context"

// Nop discards events, used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Event) {}

func (Nop) PublisherWorker(ctx context.Context) { <-ctx.Done() }
