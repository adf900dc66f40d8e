package session

import (
	"context"
	"errors"
	"fmt"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// Command wraps the model.Command and adds session-specific validation
type Command struct {
	model.Command
	logger *log.Logger
}

// NewCommand creates a new Command from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{Command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *Command) Validate() error {
	ctx := context.Background()
	c.logger.Info(ctx, "Validating command", log.Fields{"scope": c.Scope, "operation": c.Operation})

	if c.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	if c.Operation == "" {
		c.logger.Error(ctx, "Command operation is empty", nil)
		return errors.New("command operation is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks if the scope and operation are valid
func (c *Command) validateScopeAndOperation() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating scope and operation", log.Fields{"scope": c.Scope, "operation": c.Operation})

	switch c.Scope {
	case "user":
		return c.validateUserCommand()
	case "group":
		return c.validateGroupCommand()
	case "standard":
		return c.validateStandardCommand()
	case "staff":
		return c.validateStaffCommand()
	case "system":
		return c.validateSystemCommand()
	default:
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.Scope})
		return fmt.Errorf("invalid command scope: %s", c.Scope)
	}
}

func (c *Command) validateUserCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating user command", log.Fields{"operation": c.Operation})

	switch c.Operation {
	case "add":
		if len(c.Args) < 1 || len(c.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for user add command", log.Fields{"argCount": len(c.Args)})
			return errors.New("user add command requires 1 or 2 arguments: <username> [password]")
		}
	case "update":
		if len(c.Args) < 1 || len(c.Args) > 3 {
			c.logger.Error(ctx, "Invalid number of arguments for user update command", log.Fields{"argCount": len(c.Args)})
			return errors.New("user update command requires 1 to 3 arguments: <username> [new_username] [new_password]")
		}
	case "delete":
		if len(c.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for user delete command", log.Fields{"argCount": len(c.Args)})
			return errors.New("user delete command requires 1 argument: <username>")
		}
	case "select":
		if len(c.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for user select command", log.Fields{"argCount": len(c.Args)})
			return errors.New("user select command requires 0 to 2 arguments: [username] [password]")
		}
	case "list":
		if len(c.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for user list command", log.Fields{"argCount": len(c.Args)})
			return errors.New("user list command does not accept any arguments")
		}
	default:
		c.logger.Error(ctx, "Invalid user operation", log.Fields{"operation": c.Operation})
		return fmt.Errorf("invalid user operation: %s", c.Operation)
	}
	return nil
}

func (c *Command) validateGroupCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating group command", log.Fields{"operation": c.Operation})

	switch c.Operation {
	case "add":
		if len(c.Args) < 1 || len(c.Args) > 3 {
			c.logger.Error(ctx, "Invalid number of arguments for group add command", log.Fields{"argCount": len(c.Args)})
			return errors.New("group add command requires 1 to 3 arguments: <name> [color] [description]")
		}
	case "update":
		if len(c.Args) < 2 {
			c.logger.Error(ctx, "Invalid number of arguments for group update command", log.Fields{"argCount": len(c.Args)})
			return errors.New("group update command requires at least 2 arguments: <name> [name:<new_name>] [color:<hex>] [desc:<description>]")
		}
	case "recode":
		if len(c.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for group recode command", log.Fields{"argCount": len(c.Args)})
			return errors.New("group recode command requires 2 arguments: <name> <new_letter>")
		}
	case "delete":
		if len(c.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for group delete command", log.Fields{"argCount": len(c.Args)})
			return errors.New("group delete command requires 1 argument: <name>")
		}
	case "list":
		if len(c.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for group list command", log.Fields{"argCount": len(c.Args)})
			return errors.New("group list command does not accept any arguments")
		}
	case "view":
		if len(c.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for group view command", log.Fields{"argCount": len(c.Args)})
			return errors.New("group view command accepts at most 2 arguments: [name] [--all]")
		}
	default:
		c.logger.Error(ctx, "Invalid group operation", log.Fields{"operation": c.Operation})
		return fmt.Errorf("invalid group operation: %s", c.Operation)
	}
	return nil
}

func (c *Command) validateStandardCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating standard command", log.Fields{"operation": c.Operation})

	switch c.Operation {
	case "add":
		if len(c.Args) < 2 || len(c.Args) > 3 {
			c.logger.Error(ctx, "Invalid number of arguments for standard add command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard add command requires 2 or 3 arguments: <parent_code|group_name> <name> [description]")
		}
	case "update":
		if len(c.Args) < 2 {
			c.logger.Error(ctx, "Invalid number of arguments for standard update command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard update command requires at least 2 arguments: <code> [name:<text>] [desc:<text>] [code:<new_code>] [parent:<code>] [group:<name>]")
		}
	case "move":
		if len(c.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for standard move command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard move command requires 2 arguments: <code> <new_parent_code>")
		}
	case "regroup":
		if len(c.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for standard regroup command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard regroup command requires 2 arguments: <code> <group_name>")
		}
	case "delete":
		if len(c.Args) < 1 || len(c.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for standard delete command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard delete command requires 1 or 2 arguments: <code> [--cascade]")
		}
	case "list":
		if len(c.Args) > 1 {
			c.logger.Error(ctx, "Invalid number of arguments for standard list command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard list command accepts at most 1 argument: [group_name]")
		}
	case "view":
		if len(c.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for standard view command", log.Fields{"argCount": len(c.Args)})
			return errors.New("standard view command accepts at most 2 arguments: [code] [--all]")
		}
	case "collapse", "expand":
		if len(c.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for collapse state command", log.Fields{"operation": c.Operation, "argCount": len(c.Args)})
			return fmt.Errorf("standard %s command requires 1 argument: <code>", c.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid standard operation", log.Fields{"operation": c.Operation})
		return fmt.Errorf("invalid standard operation: %s", c.Operation)
	}
	return nil
}

func (c *Command) validateStaffCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating staff command", log.Fields{"operation": c.Operation})

	switch c.Operation {
	case "add":
		if len(c.Args) < 1 || len(c.Args) > 3 {
			c.logger.Error(ctx, "Invalid number of arguments for staff add command", log.Fields{"argCount": len(c.Args)})
			return errors.New("staff add command requires 1 to 3 arguments: <name> [role] [email]")
		}
	case "update":
		if len(c.Args) < 2 {
			c.logger.Error(ctx, "Invalid number of arguments for staff update command", log.Fields{"argCount": len(c.Args)})
			return errors.New("staff update command requires at least 2 arguments: <name> [name:<new_name>] [role:<role>] [email:<email>]")
		}
	case "delete", "view":
		if len(c.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for staff command", log.Fields{"operation": c.Operation, "argCount": len(c.Args)})
			return fmt.Errorf("staff %s command requires 1 argument: <name>", c.Operation)
		}
	case "list":
		if len(c.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for staff list command", log.Fields{"argCount": len(c.Args)})
			return errors.New("staff list command does not accept any arguments")
		}
	case "assess":
		if len(c.Args) < 3 || len(c.Args) > 4 {
			c.logger.Error(ctx, "Invalid number of arguments for staff assess command", log.Fields{"argCount": len(c.Args)})
			return errors.New("staff assess command requires 3 or 4 arguments: <name> <standard_code> <score> [note]")
		}
	case "unassess":
		if len(c.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for staff unassess command", log.Fields{"argCount": len(c.Args)})
			return errors.New("staff unassess command requires 2 arguments: <name> <standard_code>")
		}
	default:
		c.logger.Error(ctx, "Invalid staff operation", log.Fields{"operation": c.Operation})
		return fmt.Errorf("invalid staff operation: %s", c.Operation)
	}
	return nil
}

func (c *Command) validateSystemCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating system command", log.Fields{"operation": c.Operation})

	switch c.Operation {
	case "export", "import":
		if len(c.Args) < 1 || len(c.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for system command", log.Fields{"operation": c.Operation, "argCount": len(c.Args)})
			return fmt.Errorf("system %s command requires 1 or 2 arguments: <filename> [json|xml|yaml]", c.Operation)
		}
	case "exit", "quit":
		if len(c.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for system command", log.Fields{"operation": c.Operation, "argCount": len(c.Args)})
			return fmt.Errorf("system %s command does not accept any arguments", c.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid system operation", log.Fields{"operation": c.Operation})
		return fmt.Errorf("invalid system operation: %s", c.Operation)
	}
	return nil
}
