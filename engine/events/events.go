// Package events publishes entity change notifications to NATS, with
// OpenTelemetry trace propagation in the message headers. Publishing is
// fire-and-forget from the API's perspective; a failed publish never changes
// a response.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// Action is what happened to the entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one entity mutation. ID is a string for customers and
// territories and an integer for everything else.
type Event struct {
	Entity string `json:"entity"`
	Action Action `json:"action"`
	ID     any    `json:"id"`
}

// Publisher emits change events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event. Wired when NATS is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// NATS publishes events to northwind.<entity>.<action> subjects.
type NATS struct {
	conn *nats.Conn
}

func NewNATS(conn *nats.Conn) *NATS { return &NATS{conn: conn} }

func (p *NATS) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &nats.Msg{
		Subject: fmt.Sprintf("northwind.%s.%s", ev.Entity, ev.Action),
		Data:    data,
	}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))
	return p.conn.PublishMsg(msg)
}

// headerCarrier adapts nats.Msg headers for OTel TextMapCarrier.
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}
