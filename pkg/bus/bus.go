// Package bus publishes and tails faker events over NATS.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix prefixes every subject the faker publishes on.
const SubjectPrefix = "fiofaker."

// Event is the envelope of every published message.
type Event struct {
	Subject string         `json:"subject"`
	Time    time.Time      `json:"time"`
	Data    map[string]any `json:"data"`
}

// Bus wraps a core NATS connection.
type Bus struct {
	conn *nats.Conn
}

// New creates a Bus connected to the provided NATS endpoint.
func New(url string, opts ...nats.Option) (*Bus, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Bus{conn: nc}, nil
}

// Close drains and shuts down the underlying NATS connection.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Publish wraps data in an Event and publishes it on SubjectPrefix+name.
func (b *Bus) Publish(ctx context.Context, name string, data map[string]any) error {
	if b == nil {
		return errors.New("nil bus")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := Encode(name, data, time.Now())
	if err != nil {
		return err
	}
	return b.conn.Publish(SubjectPrefix+name, payload)
}

// Encode marshals an event envelope.
func Encode(name string, data map[string]any, at time.Time) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	return json.Marshal(Event{Subject: SubjectPrefix + name, Time: at.UTC(), Data: data})
}

// Decode unmarshals an event envelope.
func Decode(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

type subscription struct {
	sub    *nats.Subscription
	mu     sync.Mutex
	closed bool
}

func (s *subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.sub.Drain()
}

// Subscribe invokes fn for every event published on subj until ctx is done.
// Messages that do not decode are skipped.
func (b *Bus) Subscribe(ctx context.Context, subj string, fn func(ctx context.Context, ev Event) error) (io.Closer, error) {
	if b == nil {
		return nil, errors.New("nil bus")
	}
	if fn == nil {
		return nil, errors.New("nil handler")
	}

	handler := func(msg *nats.Msg) {
		ev, err := Decode(msg.Data)
		if err != nil {
			return
		}
		_ = fn(ctx, ev)
	}

	sub, err := b.conn.Subscribe(subj, handler)
	if err != nil {
		return nil, err
	}

	s := &subscription{sub: sub}

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	return s, nil
}
