// Package cli implements the interactive command-line frontend of the
// Skillscape application. It reads lines with readline, parses them into
// commands, passes them to the CLI adapter and renders the results.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"skillscape/local-app/pkg/adapter"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/ui"
)

// CLI represents the command-line interface
type CLI struct {
	adapter     *adapter.CLIAdapter
	catalogueUI *ui.CatalogueUI
	rl          *readline.Instance
	stopCh      chan struct{}
	logger      *log.Logger
}

// NewCLI creates a new CLI instance with line editing and command history.
func NewCLI(cliAdapter *adapter.CLIAdapter, historyFile string, logger *log.Logger) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &CLI{
		adapter:     cliAdapter,
		catalogueUI: ui.NewCatalogueUI(os.Stdout, true),
		rl:          rl,
		stopCh:      make(chan struct{}),
		logger:      logger,
	}, nil
}

// Run starts the CLI and handles user input until the user exits or Stop is
// called.
func (c *CLI) Run() error {
	fmt.Println("Welcome to Skillscape CLI!")
	fmt.Println("Type 'help' for a list of commands or 'exit' to quit.")

	if err := c.adapter.AdapterStart(); err != nil {
		return fmt.Errorf("failed to start CLI adapter: %w", err)
	}
	defer func() {
		if err := c.adapter.AdapterStop(); err != nil {
			fmt.Printf("Error stopping CLI adapter: %v\n", err)
		}
	}()
	defer c.rl.Close()

	c.logger.Info(context.Background(), "CLI started", nil)

	// Main loop
	for {
		select {
		case <-c.stopCh:
			return nil
		default:
		}

		// Update the prompt before each command
		c.rl.SetPrompt(c.adapter.PromptGet())

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Println("Use 'exit' or 'quit' to exit the program.")
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := c.executeLine(line, true); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

// Stop signals the CLI to stop its main loop. Closing the readline instance
// unblocks a pending Readline call.
func (c *CLI) Stop() {
	close(c.stopCh)
	if err := c.rl.Close(); err != nil {
		c.logger.Warn(context.Background(), "Failed to close readline", log.Fields{"error": err})
	}
}

// ExecuteScript executes the commands in the given file one line at a time.
// Blank lines and lines starting with '#' are skipped. Each line is echoed
// with the prompt so the output reads like an interactive session, and a
// failing command is reported without stopping the script.
func (c *CLI) ExecuteScript(filename string) error {
	c.logger.Info(context.Background(), "Executing script", log.Fields{"filename": filename})

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read script file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fmt.Printf("%s%s\n", c.adapter.PromptGet(), line)
		if err := c.executeLine(line, false); err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

// executeLine parses and executes a single command line. Interactive mode
// enables password prompting; scripts have to carry passwords inline.
func (c *CLI) executeLine(line string, interactive bool) error {
	args := ParseArgs(line)
	if len(args) == 0 {
		return nil
	}

	// Help is handled by the frontend without a round trip to the session.
	if args[0] == "help" {
		c.printHelp(args[1:])
		return nil
	}

	// Bare 'exit' and 'quit' work the same as 'system exit'.
	if len(args) == 1 && (args[0] == "exit" || args[0] == "quit") {
		return fmt.Errorf("exit requested: %w", io.EOF)
	}

	cmd := model.Command{
		Scope: strings.ToLower(args[0]),
	}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	// Prompt for a password when 'user add' or 'user select' got only a
	// username. An empty answer leaves the password unset.
	if interactive && cmd.Scope == "user" && (cmd.Operation == "add" || cmd.Operation == "select") && len(cmd.Args) == 1 {
		password, err := c.readPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if password != "" {
			cmd.Args = append(cmd.Args, password)
		}
	}

	result, err := c.adapter.CommandProcess(cmd)
	if err != nil {
		return err
	}

	c.displayResult(result)
	return nil
}

// displayResult renders a command result according to its concrete type.
// Mutations come back as confirmation strings, list operations as model
// slices and view operations as view payloads.
func (c *CLI) displayResult(result interface{}) {
	switch v := result.(type) {
	case nil:
	case string:
		fmt.Println(v)
	case []model.UserInfo:
		c.catalogueUI.UserList(v)
	case []*model.Group:
		c.catalogueUI.GroupList(v)
	case []*model.Standard:
		c.catalogueUI.StandardList(v)
	case []*model.Staff:
		c.catalogueUI.StaffList(v)
	case *model.TreeView:
		c.catalogueUI.TreeView(v)
	case *model.StaffView:
		c.catalogueUI.StaffView(v)
	default:
		fmt.Printf("Result: %v\n", v)
	}
}

// readPassword reads a password from the terminal without echoing it.
func (c *CLI) readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Println() // Print a newline after the password input
	return string(passwordBytes), nil
}

// ParseArgs splits a command line into arguments, keeping double-quoted
// segments together. Quotes are stripped from the resulting arguments.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}
