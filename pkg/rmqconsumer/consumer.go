package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"users-api/config"
	"users-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	ownConn    bool
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

// New builds a consumer. A non-nil conn is shared with the publisher and
// is not dialed again.
func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp091.Dial(dsn)
		if err != nil {
			return fmt.Errorf("amqp dial: %w", err)
		}
		c.conn, c.ownConn = conn, true
	}

	ch, err := c.conn.Channel()
	if err != nil {
		if c.ownConn {
			_ = c.conn.Close()
			c.conn = nil
		}
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.chConsume = ch

	c.log.Info("rabbitmq consumer connected successfully", zap.Bool("shared_conn", !c.ownConn))

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range mq.RoutingKeys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		if c.chConsume != nil {
			_ = c.chConsume.Close()
		}
		if c.ownConn && c.conn != nil {
			_ = c.conn.Close()
		}
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("mq delivery channel closed")
				return
			}
			// we can also use "fan-out" chan here with "worker-pool"
			// in case of heavy logic processing of messages
			if err := c.delivery(msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func action(routingKey string) string {
	switch routingKey {
	case http.MethodPost:
		return "UserCreated"
	case http.MethodPut:
		return "UserUpdated"
	case http.MethodDelete:
		return "UserDeleted"
	}
	return ""
}

// delivery logs the user change; deliveries are auto-acked.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event %q: %w", msg.MessageId, err)
	}

	c.log.Info("user event",
		zap.String("action", action(msg.RoutingKey)),
		zap.String("event_id", e.Id.String()),
		zap.Int64("user_id", e.UserID),
		zap.String("email", e.Payload.Email),
		zap.Time("time_stamp", e.TS),
	)

	return nil
}
