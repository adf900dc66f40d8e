package cli

import (
	"fmt"
)

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		fmt.Println("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	fmt.Println("Command syntax: <scope> <operation> [arguments] [options]")
	fmt.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				fmt.Printf("Commands for %s:\n\n", scope)
				found = true
			}
			fmt.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		fmt.Printf("No help found for scope %s\n", scope)
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Printf("Command: %s %s\n", scope, operation)
			fmt.Printf("Description: %s\n", cmd.LongDesc)
			fmt.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Options) > 0 {
				fmt.Println("Options:")
				for _, opt := range cmd.Options {
					fmt.Printf("  %s\n", opt)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Println("Examples:")
				for _, ex := range cmd.Examples {
					fmt.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Printf("No help found for %s %s\n", scope, operation)
}

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Options   []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "user",
		Operation: "add",
		ShortDesc: "Add a new user",
		LongDesc:  "Creates a new user account with the specified username and password. When no password is given on an interactive prompt, one is asked for without echoing.",
		Syntax:    "user add <username> [password]",
		Arguments: []string{"username: The name of the new user", "password: (Optional) The password for the new user"},
		Examples:  []string{"user add dana", "user add sam secret_password"},
	},
	{
		Scope:     "user",
		Operation: "update",
		ShortDesc: "Update the current user",
		LongDesc:  "Updates the username or password of the currently selected user. Only the current user can be updated.",
		Syntax:    "user update <username> [new_username] [new_password]",
		Arguments: []string{"username: The name of the user to update", "new_username: (Optional) The new username", "new_password: (Optional) The new password"},
		Examples:  []string{"user update dana", "user update dana danny", "user update dana danny new_password"},
	},
	{
		Scope:     "user",
		Operation: "delete",
		ShortDesc: "Delete the current user",
		LongDesc:  "Deletes the currently selected user account and deselects it in every session.",
		Syntax:    "user delete <username>",
		Arguments: []string{"username: The name of the user to delete"},
		Examples:  []string{"user delete dana"},
	},
	{
		Scope:     "user",
		Operation: "select",
		ShortDesc: "Select a user",
		LongDesc:  "Selects the specified user account after checking the password. If no username is provided, deselects the current user.",
		Syntax:    "user select [username] [password]",
		Arguments: []string{"username: (Optional) The name of the user to select", "password: (Optional) The password of the user"},
		Examples:  []string{"user select", "user select dana"},
	},
	{
		Scope:     "user",
		Operation: "list",
		ShortDesc: "List all users",
		LongDesc:  "Displays all user accounts without their password hashes.",
		Syntax:    "user list",
		Examples:  []string{"user list"},
	},
	{
		Scope:     "group",
		Operation: "add",
		ShortDesc: "Add a new group",
		LongDesc:  "Creates a new group of standards. The lowest unused letter is assigned as its code.",
		Syntax:    "group add <name> [color] [description]",
		Arguments: []string{"name: The name of the new group", "color: (Optional) A hex color like #FF7F50 used when displaying the group", "description: (Optional) A free-form description"},
		Examples:  []string{"group add Safety", "group add Safety #FF7F50 \"Workplace safety standards\""},
	},
	{
		Scope:     "group",
		Operation: "update",
		ShortDesc: "Update a group",
		LongDesc:  "Updates the name, color or description of an existing group. Renaming a group updates the group reference of all its standards.",
		Syntax:    "group update <name> [name:<new_name>] [color:<hex>] [desc:<description>]",
		Arguments: []string{"name: The name of the group to update", "field: One or more label:value pairs with the fields to change"},
		Examples:  []string{"group update Safety color:#2E8B57", "group update Safety name:Compliance desc:\"Regulatory standards\""},
	},
	{
		Scope:     "group",
		Operation: "recode",
		ShortDesc: "Change a group letter",
		LongDesc:  "Changes the letter code of a group. The codes of all standards in the group are rewritten to start with the new letter, and assessments follow the rewritten codes.",
		Syntax:    "group recode <name> <new_letter>",
		Arguments: []string{"name: The name of the group", "new_letter: The new letter code, a single unused capital letter"},
		Examples:  []string{"group recode Safety C"},
	},
	{
		Scope:     "group",
		Operation: "delete",
		ShortDesc: "Delete a group",
		LongDesc:  "Deletes a group. The group must not contain any standards.",
		Syntax:    "group delete <name>",
		Arguments: []string{"name: The name of the group to delete"},
		Examples:  []string{"group delete Safety"},
	},
	{
		Scope:     "group",
		Operation: "list",
		ShortDesc: "List all groups",
		LongDesc:  "Displays all groups ordered by their letter code.",
		Syntax:    "group list",
		Examples:  []string{"group list"},
	},
	{
		Scope:     "group",
		Operation: "view",
		ShortDesc: "View group trees",
		LongDesc:  "Displays the standards of a group as a tree, or all groups when no name is given. Collapsed standards hide their children unless --all is given.",
		Syntax:    "group view [name] [--all]",
		Arguments: []string{"name: (Optional) The name of the group to view"},
		Options:   []string{"--all: Show the children of collapsed standards as well"},
		Examples:  []string{"group view", "group view Safety", "group view Safety --all"},
	},
	{
		Scope:     "standard",
		Operation: "add",
		ShortDesc: "Add a new standard",
		LongDesc:  "Adds a new standard under a parent standard or at the top of a group. The next free code under the target is assigned automatically.",
		Syntax:    "standard add <parent_code|group_name> <name> [description]",
		Arguments: []string{"parent_code|group_name: The code of the parent standard, or the name of a group for a top-level standard", "name: The name of the new standard", "description: (Optional) A free-form description"},
		Examples:  []string{"standard add Safety \"Fire safety\"", "standard add A.1 \"Evacuation drills\" \"Quarterly evacuation exercises\""},
	},
	{
		Scope:     "standard",
		Operation: "update",
		ShortDesc: "Update a standard",
		LongDesc:  "Updates the fields of an existing standard. Changing the code, parent or group moves the standard and recodes its subtree; assessments follow the new codes.",
		Syntax:    "standard update <code> [name:<text>] [desc:<text>] [code:<new_code>] [parent:<code>] [group:<name>]",
		Arguments: []string{"code: The code of the standard to update", "field: One or more label:value pairs with the fields to change"},
		Examples:  []string{"standard update A.1 name:\"Fire drills\"", "standard update A.1.2 parent:A.3", "standard update A.1 desc:\"Revised for 2025\""},
	},
	{
		Scope:     "standard",
		Operation: "move",
		ShortDesc: "Move a standard",
		LongDesc:  "Moves a standard and its subtree under a new parent standard. The subtree is recoded to extend the new parent's code and assessments follow.",
		Syntax:    "standard move <code> <new_parent_code>",
		Arguments: []string{"code: The code of the standard to move", "new_parent_code: The code of the new parent standard"},
		Examples:  []string{"standard move A.1.2 A.3"},
	},
	{
		Scope:     "standard",
		Operation: "regroup",
		ShortDesc: "Move a standard to another group",
		LongDesc:  "Moves a standard and its subtree to the top level of another group. The subtree is recoded under the target group's letter and assessments follow.",
		Syntax:    "standard regroup <code> <group_name>",
		Arguments: []string{"code: The code of the standard to move", "group_name: The name of the target group"},
		Examples:  []string{"standard regroup A.1 Compliance"},
	},
	{
		Scope:     "standard",
		Operation: "delete",
		ShortDesc: "Delete a standard",
		LongDesc:  "Deletes a standard. A standard with children is only deleted with --cascade, which removes the whole subtree and all assessments referring to it.",
		Syntax:    "standard delete <code> [--cascade]",
		Arguments: []string{"code: The code of the standard to delete"},
		Options:   []string{"--cascade: Delete the standard together with all its descendants"},
		Examples:  []string{"standard delete A.1.2", "standard delete A.1 --cascade"},
	},
	{
		Scope:     "standard",
		Operation: "list",
		ShortDesc: "List standards",
		LongDesc:  "Displays all standards in code order, or only the standards of one group.",
		Syntax:    "standard list [group_name]",
		Arguments: []string{"group_name: (Optional) Limit the list to the standards of this group"},
		Examples:  []string{"standard list", "standard list Safety"},
	},
	{
		Scope:     "standard",
		Operation: "view",
		ShortDesc: "View standard trees",
		LongDesc:  "Displays a standard and its subtree, or every group's tree when no code is given. Collapsed standards hide their children unless --all is given.",
		Syntax:    "standard view [code] [--all]",
		Arguments: []string{"code: (Optional) The code of the subtree root to view"},
		Options:   []string{"--all: Show the children of collapsed standards as well"},
		Examples:  []string{"standard view", "standard view A.1", "standard view A.1 --all"},
	},
	{
		Scope:     "standard",
		Operation: "collapse",
		ShortDesc: "Collapse a standard",
		LongDesc:  "Marks a standard as collapsed so tree views hide its children.",
		Syntax:    "standard collapse <code>",
		Arguments: []string{"code: The code of the standard to collapse"},
		Examples:  []string{"standard collapse A.1"},
	},
	{
		Scope:     "standard",
		Operation: "expand",
		ShortDesc: "Expand a standard",
		LongDesc:  "Clears the collapsed mark of a standard so tree views show its children again.",
		Syntax:    "standard expand <code>",
		Arguments: []string{"code: The code of the standard to expand"},
		Examples:  []string{"standard expand A.1"},
	},
	{
		Scope:     "staff",
		Operation: "add",
		ShortDesc: "Add a staff member",
		LongDesc:  "Adds a new staff member to assess against the standards.",
		Syntax:    "staff add <name> [role] [email]",
		Arguments: []string{"name: The full name of the staff member. Use quotes for names with spaces", "role: (Optional) The role of the staff member", "email: (Optional) The email address"},
		Examples:  []string{"staff add \"Dana Reyes\"", "staff add \"Dana Reyes\" Trainer dana@example.com"},
	},
	{
		Scope:     "staff",
		Operation: "update",
		ShortDesc: "Update a staff member",
		LongDesc:  "Updates the name, role or email of an existing staff member. Assessments stay attached across a rename.",
		Syntax:    "staff update <name> [name:<new_name>] [role:<role>] [email:<email>]",
		Arguments: []string{"name: The name of the staff member to update", "field: One or more label:value pairs with the fields to change"},
		Examples:  []string{"staff update \"Dana Reyes\" role:\"Senior Trainer\"", "staff update \"Dana Reyes\" name:\"Dana Reyes-Cole\" email:dana.rc@example.com"},
	},
	{
		Scope:     "staff",
		Operation: "delete",
		ShortDesc: "Delete a staff member",
		LongDesc:  "Deletes a staff member together with all their assessments.",
		Syntax:    "staff delete <name>",
		Arguments: []string{"name: The name of the staff member to delete"},
		Examples:  []string{"staff delete \"Dana Reyes\""},
	},
	{
		Scope:     "staff",
		Operation: "list",
		ShortDesc: "List all staff members",
		LongDesc:  "Displays all staff members with their assessment counts.",
		Syntax:    "staff list",
		Examples:  []string{"staff list"},
	},
	{
		Scope:     "staff",
		Operation: "view",
		ShortDesc: "View a staff member",
		LongDesc:  "Displays a staff member and all their assessments with scores and notes.",
		Syntax:    "staff view <name>",
		Arguments: []string{"name: The name of the staff member to view"},
		Examples:  []string{"staff view \"Dana Reyes\""},
	},
	{
		Scope:     "staff",
		Operation: "assess",
		ShortDesc: "Record an assessment",
		LongDesc:  "Records or replaces the assessment of a staff member against a standard. A staff member has at most one assessment per standard.",
		Syntax:    "staff assess <name> <standard_code> <score> [note]",
		Arguments: []string{"name: The name of the staff member", "standard_code: The code of the assessed standard", "score: A number from 1 to 5", "note: (Optional) A free-form note. Use quotes for notes with spaces"},
		Examples:  []string{"staff assess \"Dana Reyes\" A.1 4", "staff assess \"Dana Reyes\" A.1.2 3 \"Needs a refresher\""},
	},
	{
		Scope:     "staff",
		Operation: "unassess",
		ShortDesc: "Remove an assessment",
		LongDesc:  "Removes the assessment of a staff member for one standard.",
		Syntax:    "staff unassess <name> <standard_code>",
		Arguments: []string{"name: The name of the staff member", "standard_code: The code of the standard"},
		Examples:  []string{"staff unassess \"Dana Reyes\" A.1"},
	},
	{
		Scope:     "system",
		Operation: "export",
		ShortDesc: "Export the catalogue to a file",
		LongDesc:  "Exports all groups, standards and staff to a file in JSON, XML or YAML format. The format follows the file extension unless given explicitly.",
		Syntax:    "system export <filename> [json|xml|yaml]",
		Arguments: []string{"filename: The name of the file to save to", "format: (Optional) The file format, 'json', 'xml' or 'yaml'. Defaults to the file extension"},
		Examples:  []string{"system export catalogue.json", "system export standards.yaml", "system export backup.dat xml"},
	},
	{
		Scope:     "system",
		Operation: "import",
		ShortDesc: "Import a catalogue from a file",
		LongDesc:  "Imports groups, standards and staff from a file in JSON, XML or YAML format, replacing the current catalogue. The file is validated fully before anything is replaced.",
		Syntax:    "system import <filename> [json|xml|yaml]",
		Arguments: []string{"filename: The name of the file to import from", "format: (Optional) The file format, 'json', 'xml' or 'yaml'. Defaults to the file extension"},
		Examples:  []string{"system import catalogue.json", "system import standards.yaml yaml"},
	},
	{
		Scope:     "system",
		Operation: "exit",
		ShortDesc: "Exit the program",
		LongDesc:  "Exits the Skillscape program. All changes are already saved.",
		Syntax:    "system exit",
		Examples:  []string{"system exit"},
	},
	{
		Scope:     "system",
		Operation: "quit",
		ShortDesc: "Quit the program",
		LongDesc:  "Quits the Skillscape program. Equivalent to 'system exit'.",
		Syntax:    "system quit",
		Examples:  []string{"system quit"},
	},
}
