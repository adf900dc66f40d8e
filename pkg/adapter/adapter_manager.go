// Package adapter connects user-facing frontends to the session package.
package adapter

import (
	"context"
	"fmt"
	"sync"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/session"
)

// TypeCLI is the adapter type registered for the command-line frontend
const TypeCLI = "cli"

// AdapterInstance represents an instance of an adapter bound to one session
type AdapterInstance interface {
	// CommandProcess validates a command and runs it in the adapter's session
	CommandProcess(cmd model.Command) (interface{}, error)

	// AdapterStart starts the adapter instance
	AdapterStart() error

	// AdapterStop terminates the adapter instance and its session
	AdapterStop() error

	// GetType returns the type of the adapter
	GetType() string

	// SessionID returns the ID of the session the adapter is bound to
	SessionID() string
}

// AdapterFactory creates new instances of adapters
type AdapterFactory func() (AdapterInstance, error)

// AdapterManager manages all adapter instances
type AdapterManager struct {
	factories      map[string]AdapterFactory
	instances      sync.Map // map[string]AdapterInstance keyed by session ID
	sessionManager *session.SessionManager
	logger         *log.Logger
}

// NewAdapterManager creates a new AdapterManager
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) *AdapterManager {
	logger.Info(context.Background(), "Creating new AdapterManager", nil)
	return &AdapterManager{
		factories:      make(map[string]AdapterFactory),
		sessionManager: sm,
		logger:         logger,
	}
}

// FactoryRegister registers a factory for an adapter type
func (am *AdapterManager) FactoryRegister(adapterType string, factory AdapterFactory) {
	am.logger.Info(context.Background(), "Registering adapter factory", log.Fields{"type": adapterType})
	am.factories[adapterType] = factory
}

// AdapterAdd creates a new adapter instance through the registered factory
// and tracks it under its session ID.
func (am *AdapterManager) AdapterAdd(adapterType string) (AdapterInstance, error) {
	ctx := context.Background()
	am.logger.Info(ctx, "Adding adapter instance", log.Fields{"type": adapterType})

	factory, ok := am.factories[adapterType]
	if !ok {
		am.logger.Error(ctx, "Unknown adapter type", log.Fields{"type": adapterType})
		return nil, fmt.Errorf("unknown adapter type: %s", adapterType)
	}

	instance, err := factory()
	if err != nil {
		am.logger.Error(ctx, "Failed to create adapter instance", log.Fields{"type": adapterType, "error": err})
		return nil, fmt.Errorf("failed to create %s adapter: %w", adapterType, err)
	}

	sessionID := instance.SessionID()
	am.instances.Store(sessionID, instance)

	am.logger.Info(ctx, "Adapter instance added", log.Fields{"type": adapterType, "sessionID": sessionID})
	return instance, nil
}

// AdapterGet retrieves an adapter instance by its session ID
func (am *AdapterManager) AdapterGet(sessionID string) (AdapterInstance, bool) {
	value, ok := am.instances.Load(sessionID)
	if !ok {
		return nil, false
	}
	return value.(AdapterInstance), true
}

// CommandRun runs a command on a specific adapter instance
func (am *AdapterManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	instance, ok := am.AdapterGet(sessionID)
	if !ok {
		am.logger.Error(context.Background(), "No adapter instance found", log.Fields{"sessionID": sessionID})
		return nil, fmt.Errorf("no adapter instance found for session: %s", sessionID)
	}
	return instance.CommandProcess(cmd)
}

// AdapterStop stops one adapter instance and forgets it
func (am *AdapterManager) AdapterStop(sessionID string) {
	ctx := context.Background()

	instance, ok := am.AdapterGet(sessionID)
	if !ok {
		am.logger.Warn(ctx, "Attempted to stop unknown adapter instance", log.Fields{"sessionID": sessionID})
		return
	}

	if err := instance.AdapterStop(); err != nil {
		am.logger.Error(ctx, "Failed to stop adapter instance", log.Fields{"sessionID": sessionID, "error": err})
	}
	am.instances.Delete(sessionID)

	am.logger.Info(ctx, "Adapter instance stopped", log.Fields{"sessionID": sessionID})
}

// Shutdown stops all adapter instances
func (am *AdapterManager) Shutdown() {
	ctx := context.Background()
	am.logger.Info(ctx, "Shutting down adapter manager", nil)

	am.instances.Range(func(key, value interface{}) bool {
		instance := value.(AdapterInstance)
		if err := instance.AdapterStop(); err != nil {
			am.logger.Error(ctx, "Failed to stop adapter instance", log.Fields{"sessionID": key, "error": err})
		}
		am.instances.Delete(key)
		return true
	})

	am.logger.Info(ctx, "Adapter manager shut down", nil)
}
