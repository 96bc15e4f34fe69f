package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifeline event.
type EventType string

const (
	EventActivate   EventType = "activate"
	EventDeactivate EventType = "deactivate"
	EventSpawn      EventType = "spawn"
	EventDispose    EventType = "dispose"
	EventBirth      EventType = "birth"
	EventTerminate  EventType = "terminate"
	EventDestroy    EventType = "destroy"
)

// LifelineEvent describes a state change of one lifeline.
type LifelineEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Diagram     string    `json:"diagram"`
	Participant string    `json:"participant"`
	Direction   Direction `json:"direction"`
	Level       int       `json:"level"`
	SideLevel   int       `json:"side_level"`
	Thread      int       `json:"thread"`
	Y           int       `json:"y"`
}

// MessageEvent describes a message processed by the interpreter.
type MessageEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Diagram   string    `json:"diagram"`
	Message   Message   `json:"message"`
	Y         int       `json:"y"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnLifeline func(context.Context, *LifelineEvent)
	OnMessage  func(context.Context, *MessageEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLifeline: chain(h.OnLifeline, other.OnLifeline),
		OnMessage:  chain(h.OnMessage, other.OnMessage),
	}
}

func chain[T any](a, b func(context.Context, T)) func(context.Context, T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, v T) {
		a(ctx, v)
		b(ctx, v)
	}
}
