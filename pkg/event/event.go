// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"sync"

	"skillscape/local-app/pkg/log"
)

// EventType represents the type of event
type EventType int

const (
	UserDeleted EventType = iota
	GroupAdded
	GroupUpdated
	GroupDeleted
	StandardAdded
	StandardUpdated
	StandardsDeleted
	StandardCodesRewritten
	CatalogueImported
)

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// CodeRewrite is the payload of a StandardCodesRewritten event: the code pairs
// produced by one cascade, in rewrite order.
type CodeRewrite struct {
	OldCode string
	NewCode string
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish sends an event to all subscribed handlers. Dispatch is synchronous:
// handlers rewrite dependent state such as assessment keys, and commands are
// serialized through the session queue, so the publisher must observe handler
// effects before it returns.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, handler := range em.subscribers[event.Type] {
		func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
						"event": event,
						"panic": r,
					})
				}
			}()
			h(event)
		}(handler)
	}
}
