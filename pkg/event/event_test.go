package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "command.log",
		ErrorLog:   "error.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelDebug)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestPublishDispatchesInSubscriptionOrder(t *testing.T) {
	em := NewEventManager(newTestLogger(t))

	var calls []string
	em.Subscribe(GroupAdded, func(e Event) {
		calls = append(calls, "first:"+e.Data.(string))
	})
	em.Subscribe(GroupAdded, func(e Event) {
		calls = append(calls, "second:"+e.Data.(string))
	})

	em.Publish(Event{Type: GroupAdded, Data: "Safety"})

	// Publish is synchronous, so effects are visible on return.
	assert.Equal(t, []string{"first:Safety", "second:Safety"}, calls)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	em := NewEventManager(newTestLogger(t))
	assert.NotPanics(t, func() {
		em.Publish(Event{Type: UserDeleted, Data: "nobody listens"})
	})
}

func TestPublishDoesNotCrossEventTypes(t *testing.T) {
	em := NewEventManager(newTestLogger(t))

	var got []EventType
	em.Subscribe(StandardsDeleted, func(e Event) {
		got = append(got, e.Type)
	})

	em.Publish(Event{Type: StandardAdded})
	em.Publish(Event{Type: StandardsDeleted})

	assert.Equal(t, []EventType{StandardsDeleted}, got)
}

func TestPublishRecoversPanickingHandler(t *testing.T) {
	em := NewEventManager(newTestLogger(t))

	var reached bool
	em.Subscribe(StandardCodesRewritten, func(e Event) {
		panic("handler blew up")
	})
	em.Subscribe(StandardCodesRewritten, func(e Event) {
		reached = true
	})

	assert.NotPanics(t, func() {
		em.Publish(Event{Type: StandardCodesRewritten, Data: []CodeRewrite{{OldCode: "A.1", NewCode: "A.2"}}})
	})
	assert.True(t, reached, "handlers after the panicking one still run")
}
