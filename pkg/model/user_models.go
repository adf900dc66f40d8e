// Package model defines the data structures used throughout the Skillscape application.
package model

import "time"

// User represents a tool login account.
type User struct {
	Username     string    `json:"username" yaml:"username"`
	PasswordHash []byte    `json:"password_hash,omitempty" yaml:"password_hash,omitempty"`
	Active       bool      `json:"active" yaml:"active"`
	Created      time.Time `json:"created" yaml:"created"`
	Updated      time.Time `json:"updated" yaml:"updated"`
}

// UserInfo contains basic information about a user.
type UserInfo struct {
	Username string
	Password string
	Active   bool
}

// UserFilter defines which UserInfo fields an update applies.
type UserFilter struct {
	Username bool
	Password bool
	Active   bool
}
