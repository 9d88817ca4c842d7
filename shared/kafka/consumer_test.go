package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type job struct {
	ID string `json:"id"`
}

func TestTypedMessageHandler(t *testing.T) {
	var processed []string
	h := &TypedMessageHandler[job]{
		Validate: func(j *job) bool { return j.ID != "" },
		Process: func(ctx context.Context, j *job) error {
			if j.ID == "fail" {
				return errors.New("render failed")
			}
			processed = append(processed, j.ID)
			return nil
		},
		AlwaysMark: true,
		Logger:     zap.NewNop(),
	}
	ctx := context.Background()

	cases := []struct {
		name     string
		payload  string
		wantMark bool
		wantErr  bool
	}{
		{"valid", `{"id":"a"}`, true, false},
		{"garbage is marked", `not json`, true, false},
		{"invalid is marked", `{"id":""}`, true, false},
		{"processing failure is retried", `{"id":"fail"}`, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mark, err := h.HandleMessage(ctx, []byte(c.payload))
			assert.Equal(t, c.wantMark, mark)
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.Equal(t, []string{"a"}, processed)
}

func TestTypedMessageHandler_WithoutAlwaysMark(t *testing.T) {
	h := &TypedMessageHandler[job]{
		Validate: func(j *job) bool { return j.ID != "" },
		Process:  func(ctx context.Context, j *job) error { return nil },
	}

	mark, err := h.HandleMessage(context.Background(), []byte(`{"id":""}`))
	assert.NoError(t, err)
	assert.False(t, mark)
}

func TestNewConsumer_RequiresHandler(t *testing.T) {
	_, err := NewConsumer(ConsumerConfig{Brokers: []string{"localhost:9093"}, Topic: "t", GroupID: "g"})
	assert.Error(t, err)
}

// flakyHandler fails the first failures[value] attempts for each message value.
type flakyHandler struct {
	mu       sync.Mutex
	failures map[string]int
	calls    map[string]int
	onFail   func()
}

func (f *flakyHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	key := string(message)
	f.calls[key]++
	if f.calls[key] <= f.failures[key] {
		if f.onFail != nil {
			f.onFail()
		}
		return false, errors.New("render failed")
	}
	return true, nil
}

func fastRetry() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }

func TestDeliver_RetriesUntilSuccess(t *testing.T) {
	h := &flakyHandler{failures: map[string]int{"a": 2}}

	done := deliver(context.Background(), h, []byte("a"), fastRetry(), zap.NewNop())
	assert.True(t, done)
	assert.Equal(t, 3, h.calls["a"])
}

func TestDeliver_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := &flakyHandler{failures: map[string]int{"a": 1 << 30}, onFail: cancel}

	done := deliver(ctx, h, []byte("a"), fastRetry(), zap.NewNop())
	assert.False(t, done)
	assert.Equal(t, 1, h.calls["a"])
}

func TestDeliver_SkippedMessageIsNotRetried(t *testing.T) {
	h := &TypedMessageHandler[job]{
		Validate: func(j *job) bool { return j.ID != "" },
		Process:  func(ctx context.Context, j *job) error { return nil },
	}

	assert.False(t, deliver(context.Background(), h, []byte(`{"id":""}`), fastRetry(), zap.NewNop()))
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	mu     sync.Mutex
	marked []string
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, string(msg.Value))
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(values ...string) *fakeClaim {
	c := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, len(values))}
	for i, v := range values {
		c.messages <- &sarama.ConsumerMessage{Value: []byte(v), Offset: int64(10 + i)}
	}
	close(c.messages)
	return c
}

func TestConsumeClaim_FailedMessageHoldsThePartition(t *testing.T) {
	h := &flakyHandler{failures: map[string]int{"a": 2}}
	gh := &groupHandler{handler: h, newRetry: fastRetry, logger: zap.NewNop()}
	session := &fakeSession{ctx: context.Background()}

	require.NoError(t, gh.ConsumeClaim(session, claimOf("a", "b")))
	assert.Equal(t, []string{"a", "b"}, session.marked)
	assert.Equal(t, 3, h.calls["a"])
	assert.Equal(t, 1, h.calls["b"])
}

func TestConsumeClaim_SessionEndLeavesFailedMessageUnmarked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := &flakyHandler{failures: map[string]int{"a": 1 << 30}, onFail: cancel}
	gh := &groupHandler{handler: h, newRetry: fastRetry, logger: zap.NewNop()}
	session := &fakeSession{ctx: ctx}

	require.NoError(t, gh.ConsumeClaim(session, claimOf("a", "b")))
	assert.Empty(t, session.marked)
	assert.Zero(t, h.calls["b"])
}
