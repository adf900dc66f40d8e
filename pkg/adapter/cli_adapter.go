package adapter

import (
	"context"
	"fmt"
	"strings"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/session"
)

// CLIAdapter binds the command-line frontend to a single session
type CLIAdapter struct {
	sessionID      string
	sessionManager *session.SessionManager
	logger         *log.Logger
}

// NewCLIAdapter creates a new CLIAdapter with its own session
func NewCLIAdapter(sm *session.SessionManager, logger *log.Logger) (*CLIAdapter, error) {
	ctx := context.Background()
	logger.Info(ctx, "Creating new CLI adapter", nil)

	sessionID, err := sm.SessionAdd()
	if err != nil {
		logger.Error(ctx, "Failed to create session for CLI adapter", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to create session for CLI adapter: %w", err)
	}

	logger.Info(ctx, "New CLI adapter created", log.Fields{"sessionID": sessionID})
	return &CLIAdapter{
		sessionID:      sessionID,
		sessionManager: sm,
		logger:         logger,
	}, nil
}

// GetType returns the adapter type
func (a *CLIAdapter) GetType() string {
	return TypeCLI
}

// SessionID returns the ID of the session the adapter is bound to
func (a *CLIAdapter) SessionID() string {
	return a.sessionID
}

// AdapterStart starts the CLI adapter
func (a *CLIAdapter) AdapterStart() error {
	a.logger.Info(context.Background(), "CLI adapter started", log.Fields{"sessionID": a.sessionID})
	return nil
}

// AdapterStop stops the CLI adapter and releases its session
func (a *CLIAdapter) AdapterStop() error {
	ctx := context.Background()
	a.logger.Info(ctx, "CLI adapter stopping", log.Fields{"sessionID": a.sessionID})

	a.sessionManager.SessionDelete(a.sessionID)

	a.logger.Info(ctx, "CLI adapter stopped", nil)
	return nil
}

// CommandProcess validates the command and runs it in the adapter's session
func (a *CLIAdapter) CommandProcess(cmd model.Command) (interface{}, error) {
	command := session.NewCommand(cmd, a.logger)
	if err := command.Validate(); err != nil {
		return nil, err
	}
	return a.sessionManager.SessionRun(a.sessionID, cmd)
}

// ProcessInput converts the input string into a command and runs it
func (a *CLIAdapter) ProcessInput(input string) (interface{}, error) {
	cmd, err := a.parseCommand(input)
	if err != nil {
		return nil, err
	}
	return a.CommandProcess(cmd)
}

func (a *CLIAdapter) parseCommand(input string) (model.Command, error) {
	args := strings.Fields(input)
	if len(args) == 0 {
		a.logger.Info(context.Background(), "Empty command", nil)
		return model.Command{}, fmt.Errorf("empty command")
	}

	cmd := model.Command{
		Scope:     strings.ToLower(args[0]),
		Operation: "",
		Args:      []string{},
	}

	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	a.logger.Info(context.Background(), "Command parsed", log.Fields{"command": cmd})
	return cmd, nil
}

// PromptGet returns the prompt reflecting the session's current user
func (a *CLIAdapter) PromptGet() string {
	session, exists := a.sessionManager.SessionGet(a.sessionID)
	if !exists {
		a.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": a.sessionID})
		return "> "
	}

	if session.User == nil {
		return "> "
	}

	return fmt.Sprintf("%s > ", session.User.Username)
}
