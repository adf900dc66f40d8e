package session

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

func TestCommandValidate(t *testing.T) {
	logger := newTestLogger(t)

	tests := []struct {
		name    string
		cmd     model.Command
		wantErr string
	}{
		{
			name: "valid user add",
			cmd:  model.Command{Scope: "user", Operation: "add", Args: []string{"dana", "pw"}},
		},
		{
			name: "valid user select without arguments",
			cmd:  model.Command{Scope: "user", Operation: "select"},
		},
		{
			name: "valid group add with color and description",
			cmd:  model.Command{Scope: "group", Operation: "add", Args: []string{"Safety", "#FF0000", "site rules"}},
		},
		{
			name: "valid standard add",
			cmd:  model.Command{Scope: "standard", Operation: "add", Args: []string{"A.1", "Protective equipment"}},
		},
		{
			name: "valid standard delete with cascade",
			cmd:  model.Command{Scope: "standard", Operation: "delete", Args: []string{"A.1", "--cascade"}},
		},
		{
			name: "valid staff assess with note",
			cmd:  model.Command{Scope: "staff", Operation: "assess", Args: []string{"Dana Reyes", "A.1.1", "4", "solid"}},
		},
		{
			name: "valid system export",
			cmd:  model.Command{Scope: "system", Operation: "export", Args: []string{"out.json", "json"}},
		},
		{
			name: "valid system exit",
			cmd:  model.Command{Scope: "system", Operation: "exit"},
		},
		{
			name:    "empty scope",
			cmd:     model.Command{Operation: "add", Args: []string{"x"}},
			wantErr: "command scope is required",
		},
		{
			name:    "empty operation",
			cmd:     model.Command{Scope: "user"},
			wantErr: "command operation is required",
		},
		{
			name:    "unknown scope",
			cmd:     model.Command{Scope: "widget", Operation: "add", Args: []string{"x"}},
			wantErr: "invalid command scope: widget",
		},
		{
			name:    "unknown user operation",
			cmd:     model.Command{Scope: "user", Operation: "promote", Args: []string{"dana"}},
			wantErr: "invalid user operation: promote",
		},
		{
			name:    "unknown group operation",
			cmd:     model.Command{Scope: "group", Operation: "merge", Args: []string{"a", "b"}},
			wantErr: "invalid group operation: merge",
		},
		{
			name:    "unknown standard operation",
			cmd:     model.Command{Scope: "standard", Operation: "rename", Args: []string{"A.1"}},
			wantErr: "invalid standard operation: rename",
		},
		{
			name:    "unknown staff operation",
			cmd:     model.Command{Scope: "staff", Operation: "fire", Args: []string{"Dana Reyes"}},
			wantErr: "invalid staff operation: fire",
		},
		{
			name:    "unknown system operation",
			cmd:     model.Command{Scope: "system", Operation: "reboot"},
			wantErr: "invalid system operation: reboot",
		},
		{
			name:    "user add without arguments",
			cmd:     model.Command{Scope: "user", Operation: "add"},
			wantErr: "user add command requires 1 or 2 arguments: <username> [password]",
		},
		{
			name:    "user list with arguments",
			cmd:     model.Command{Scope: "user", Operation: "list", Args: []string{"extra"}},
			wantErr: "user list command does not accept any arguments",
		},
		{
			name:    "group recode with one argument",
			cmd:     model.Command{Scope: "group", Operation: "recode", Args: []string{"Safety"}},
			wantErr: "group recode command requires 2 arguments: <name> <new_letter>",
		},
		{
			name:    "group update without fields",
			cmd:     model.Command{Scope: "group", Operation: "update", Args: []string{"Safety"}},
			wantErr: "group update command requires at least 2 arguments: <name> [name:<new_name>] [color:<hex>] [desc:<description>]",
		},
		{
			name:    "standard add with one argument",
			cmd:     model.Command{Scope: "standard", Operation: "add", Args: []string{"A.1"}},
			wantErr: "standard add command requires 2 or 3 arguments: <parent_code|group_name> <name> [description]",
		},
		{
			name:    "standard move with extra arguments",
			cmd:     model.Command{Scope: "standard", Operation: "move", Args: []string{"A.1", "B.1", "C.1"}},
			wantErr: "standard move command requires 2 arguments: <code> <new_parent_code>",
		},
		{
			name:    "standard collapse without code",
			cmd:     model.Command{Scope: "standard", Operation: "collapse"},
			wantErr: "standard collapse command requires 1 argument: <code>",
		},
		{
			name:    "staff assess without score",
			cmd:     model.Command{Scope: "staff", Operation: "assess", Args: []string{"Dana Reyes", "A.1"}},
			wantErr: "staff assess command requires 3 or 4 arguments: <name> <standard_code> <score> [note]",
		},
		{
			name:    "staff unassess with one argument",
			cmd:     model.Command{Scope: "staff", Operation: "unassess", Args: []string{"Dana Reyes"}},
			wantErr: "staff unassess command requires 2 arguments: <name> <standard_code>",
		},
		{
			name:    "system import without filename",
			cmd:     model.Command{Scope: "system", Operation: "import"},
			wantErr: "system import command requires 1 or 2 arguments: <filename> [json|xml|yaml]",
		},
		{
			name:    "system exit with arguments",
			cmd:     model.Command{Scope: "system", Operation: "exit", Args: []string{"now"}},
			wantErr: "system exit command does not accept any arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand(tt.cmd, logger)
			err := cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
