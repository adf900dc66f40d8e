// Package model defines the data structures used throughout the Skillscape application.
package model

// Command represents a parsed user command.
type Command struct {
	Scope     string
	Operation string
	Args      []string
}
