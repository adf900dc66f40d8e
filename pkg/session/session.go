// Package session manages user sessions and command dispatch for the Skillscape application.
package session

import (
	"context"
	"errors"
	"time"

	"skillscape/local-app/pkg/data"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual user session
type Session struct {
	ID              string
	DataManager     *data.DataManager
	User            *model.User
	LastActivity    time.Time
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		LastActivity: time.Now(),
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	ctx := context.Background()
	s.logger.Debug(ctx, "Initializing command handlers", nil)

	s.commandHandlers = map[string]map[string]CommandHandler{
		"user":     initUserCommandHandlers(),
		"group":    initGroupCommandHandlers(),
		"standard": initStandardCommandHandlers(),
		"staff":    initStaffCommandHandlers(),
		"system":   initSystemCommandHandlers(),
	}

	s.logger.Debug(ctx, "Command handlers initialized", nil)
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"command": cmd})

	// Update last activity
	s.logger.Debug(ctx, "Updating last activity timestamp", nil)
	s.LastActivity = time.Now()

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	} else {
		s.logger.Info(ctx, "Command executed successfully", nil)
	}

	return result, err
}

// UserGet retrieves the current user
func (s *Session) UserGet() (*model.User, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Retrieving current user", nil)

	if s.User == nil {
		s.logger.Warn(ctx, "No user selected", nil)
		return nil, errors.New("no user selected")
	}

	s.logger.Debug(ctx, "Current user retrieved", log.Fields{"username": s.User.Username})
	return s.User, nil
}

// UserSet sets the current user
func (s *Session) UserSet(user *model.User) {
	ctx := context.Background()
	if user != nil {
		s.logger.Info(ctx, "Setting current user", log.Fields{"username": user.Username})
	} else {
		s.logger.Info(ctx, "Clearing current user", nil)
	}
	s.User = user
}

// initUserCommandHandlers initializes user command handlers
func initUserCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleUserAdd,
		"update": handleUserUpdate,
		"delete": handleUserDelete,
		"select": handleUserSelect,
		"list":   handleUserList,
	}
}

// initGroupCommandHandlers initializes group command handlers
func initGroupCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleGroupAdd,
		"update": handleGroupUpdate,
		"recode": handleGroupRecode,
		"delete": handleGroupDelete,
		"list":   handleGroupList,
		"view":   handleGroupView,
	}
}

// initStandardCommandHandlers initializes standard command handlers
func initStandardCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":      handleStandardAdd,
		"update":   handleStandardUpdate,
		"move":     handleStandardMove,
		"regroup":  handleStandardRegroup,
		"delete":   handleStandardDelete,
		"list":     handleStandardList,
		"view":     handleStandardView,
		"collapse": handleStandardCollapse,
		"expand":   handleStandardExpand,
	}
}

// initStaffCommandHandlers initializes staff command handlers
func initStaffCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":      handleStaffAdd,
		"update":   handleStaffUpdate,
		"delete":   handleStaffDelete,
		"list":     handleStaffList,
		"view":     handleStaffView,
		"assess":   handleStaffAssess,
		"unassess": handleStaffUnassess,
	}
}

// initSystemCommandHandlers initializes system command handlers
func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"export": handleSystemExport,
		"import": handleSystemImport,
		"exit":   handleSystemExit,
		"quit":   handleSystemExit,
	}
}
