package ports

import (
	"context"

	"users-api/internal/infrastructure/mq"
)

type EventPublisher interface {
	Publish(e mq.Event)
	PublisherWorker(ctx context.Context)
}
