package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillscape/local-app/pkg/data"
	"skillscape/local-app/pkg/event"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

// SessionManager manages multiple concurrent sessions
type SessionManager struct {
	sessions      map[string]*Session
	sessionMutex  sync.RWMutex
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	done          chan bool
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session, its result and error
type commandExecution struct {
	session *Session
	command model.Command
	result  chan interface{}
	err     chan error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan bool),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	// Sessions holding a deleted user must not keep acting as that user
	dataManager.EventManager.Subscribe(event.UserDeleted, sm.handleUserDeleted)

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Adding new session", nil)

	sessionID := uuid.New().String()

	sm.sessionMutex.Lock()
	sm.sessions[sessionID] = NewSession(sessionID, sm.dataManager, sm.logger)
	sm.sessionMutex.Unlock()

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Retrieving session", log.Fields{"sessionID": sessionID})

	sm.sessionMutex.RLock()
	session, exists := sm.sessions[sessionID]
	sm.sessionMutex.RUnlock()

	if !exists {
		sm.logger.Warn(ctx, "Session not found", log.Fields{"sessionID": sessionID})
	} else {
		sm.logger.Debug(ctx, "Session retrieved", log.Fields{"sessionID": sessionID})
	}
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Deleting session", log.Fields{"sessionID": sessionID})

	sm.sessionMutex.Lock()
	defer sm.sessionMutex.Unlock()

	if _, exists := sm.sessions[sessionID]; !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}

	delete(sm.sessions, sessionID)
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Running command in session", log.Fields{"sessionID": sessionID, "command": cmd})

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		sm.logger.Error(ctx, "Session not found", log.Fields{"sessionID": sessionID})
		return nil, errors.New("session not found")
	}

	// Log command in command log
	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	result := make(chan interface{})
	err := make(chan error)

	sm.commandQueue <- commandExecution{
		session: session,
		command: cmd,
		result:  result,
		err:     err,
	}

	select {
	case res := <-result:
		sm.logger.Info(ctx, "Command executed successfully", log.Fields{"sessionID": sessionID})
		return res, nil
	case e := <-err:
		sm.logger.Error(ctx, "Command execution failed", log.Fields{"sessionID": sessionID, "error": e})
		return nil, e
	}
}

// Stop shuts down the command executor and the cleanup routine
func (sm *SessionManager) Stop() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Stopping session manager", nil)

	sm.StopCleanupRoutine()
	close(sm.commandQueue)
}

// commandExecutor processes commands from the queue
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	for cmd := range sm.commandQueue {
		sm.logger.Debug(ctx, "Processing command", log.Fields{"sessionID": cmd.session.ID, "command": cmd.command})
		result, err := cmd.session.CommandRun(cmd.command)
		if err != nil {
			sm.logger.Error(ctx, "Command execution failed", log.Fields{"sessionID": cmd.session.ID, "error": err})
			cmd.err <- err
		} else {
			sm.logger.Debug(ctx, "Command executed successfully", log.Fields{"sessionID": cmd.session.ID})
			cmd.result <- result
		}
	}
}

// startCleanupRoutine starts a goroutine that periodically cleans up inactive sessions
func (sm *SessionManager) startCleanupRoutine() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting cleanup routine", nil)

	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions()
			case <-sm.done:
				sm.logger.Info(ctx, "Stopping cleanup routine", nil)
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// StopCleanupRoutine stops the cleanup routine
func (sm *SessionManager) StopCleanupRoutine() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Stopping cleanup routine", nil)
	sm.done <- true
}

// cleanupInactiveSessions removes inactive sessions
func (sm *SessionManager) cleanupInactiveSessions() {
	ctx := context.Background()
	sm.logger.Debug(ctx, "Running cleanup for inactive sessions", nil)

	sm.sessionMutex.Lock()
	defer sm.sessionMutex.Unlock()

	now := time.Now()
	for id, session := range sm.sessions {
		if now.Sub(session.LastActivity) > defaultSessionTimeout {
			sm.logger.Info(ctx, "Removing inactive session", log.Fields{"sessionID": id})
			delete(sm.sessions, id)
		}
	}
}

// handleUserDeleted clears the deleted user from any session that still holds it
func (sm *SessionManager) handleUserDeleted(e event.Event) {
	ctx := context.Background()

	user, ok := e.Data.(*model.User)
	if !ok {
		sm.logger.Error(ctx, "Invalid event data for UserDeleted event", log.Fields{"data": e.Data})
		return
	}

	sm.sessionMutex.RLock()
	defer sm.sessionMutex.RUnlock()

	for _, session := range sm.sessions {
		if session.User != nil && session.User.Username == user.Username {
			sm.logger.Info(ctx, "Clearing deleted user from session", log.Fields{"sessionID": session.ID, "username": user.Username})
			session.UserSet(nil)
		}
	}
}
