package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain words",
			input: "group add Safety",
			want:  []string{"group", "add", "Safety"},
		},
		{
			name:  "double quotes keep words together",
			input: `staff add "Dana Reyes" Trainer`,
			want:  []string{"staff", "add", "Dana Reyes", "Trainer"},
		},
		{
			name:  "quoted value in a field argument",
			input: `standard update A.1 name:"Fire drills"`,
			want:  []string{"standard", "update", "A.1", "name:Fire drills"},
		},
		{
			name:  "repeated spaces are collapsed",
			input: "group     list",
			want:  []string{"group", "list"},
		},
		{
			name:  "leading and trailing spaces",
			input: "  user list  ",
			want:  []string{"user", "list"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "spaces only",
			input: "    ",
			want:  nil,
		},
		{
			name:  "quotes inside a word are stripped",
			input: `a"b c"d`,
			want:  []string{"ab cd"},
		},
		{
			name:  "single quotes are ordinary characters",
			input: "staff add 'Dana Reyes'",
			want:  []string{"staff", "add", "'Dana", "Reyes'"},
		},
		{
			name:  "unterminated quote swallows the rest",
			input: `staff add "Dana Reyes Trainer`,
			want:  []string{"staff", "add", "Dana Reyes Trainer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.input))
		})
	}
}

func TestCommandHelpTable(t *testing.T) {
	t.Run("no duplicate commands", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, cmd := range commandHelps {
			key := cmd.Scope + " " + cmd.Operation
			assert.False(t, seen[key], "duplicate help entry for %q", key)
			seen[key] = true
		}
	})

	t.Run("entries are grouped by scope", func(t *testing.T) {
		// showGeneralHelp prints a scope header whenever the scope changes,
		// so a scope split across the table would print twice.
		finished := make(map[string]bool)
		currentScope := ""
		for _, cmd := range commandHelps {
			if cmd.Scope != currentScope {
				assert.False(t, finished[cmd.Scope], "scope %q appears in two runs", cmd.Scope)
				finished[currentScope] = true
				currentScope = cmd.Scope
			}
		}
	})

	t.Run("every entry is filled in", func(t *testing.T) {
		for _, cmd := range commandHelps {
			assert.NotEmpty(t, cmd.ShortDesc, "%s %s", cmd.Scope, cmd.Operation)
			assert.NotEmpty(t, cmd.LongDesc, "%s %s", cmd.Scope, cmd.Operation)
			assert.NotEmpty(t, cmd.Syntax, "%s %s", cmd.Scope, cmd.Operation)
			assert.NotEmpty(t, cmd.Examples, "%s %s", cmd.Scope, cmd.Operation)
		}
	})
}
