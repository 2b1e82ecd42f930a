package mq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"users-api/config"
	"users-api/internal/interface/api/rest/dto/user"
)

type fakeChannel struct {
	mu     sync.Mutex
	msgs   []amqp091.Publishing
	keys   []string
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp091.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func TestPublisherWorker_PublishesEvents(t *testing.T) {
	ch := &fakeChannel{}
	r := New(config.MQ{Exchange: "users"}, zap.NewNop())
	r.pubCh = ch

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.PublisherWorker(ctx)
		close(done)
	}()

	e := NewEvent(http.MethodPost, user.User{ID: 4, Name: "Ann", Email: "ann@x.com"})
	r.Publish(e)

	require.Eventually(t, func() bool { return ch.published() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	ch.mu.Lock()
	defer ch.mu.Unlock()
	assert.True(t, ch.closed)
	assert.Equal(t, []string{http.MethodPost}, ch.keys)

	msg := ch.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, e.Id.String(), msg.MessageId)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, int64(4), got.UserID)
	assert.Equal(t, "Ann", got.Payload.Name)
}

func TestPublisherWorker_LogsPublishError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ch := &fakeChannel{err: errors.New("channel closed")}
	r := New(config.MQ{}, zap.New(core))
	r.pubCh = ch

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.PublisherWorker(ctx)
		close(done)
	}()

	r.Publish(NewEvent(http.MethodDelete, user.User{ID: 1}))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("mq publish error").Len() == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestPublish_DropsWhenBufferFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := New(config.MQ{}, zap.New(core))

	for i := 0; i < bufferSize+3; i++ {
		r.Publish(NewEvent(http.MethodPut, user.User{ID: int64(i)}))
	}

	assert.Len(t, r.in, bufferSize)
	assert.Equal(t, 3, logs.FilterMessage("mq buffer full, event dropped").Len())
}

func TestNop(t *testing.T) {
	var n Nop
	n.Publish(Event{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.PublisherWorker(ctx)
}
