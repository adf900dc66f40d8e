// Package model defines the data structures used throughout the Skillscape application.
package model

import "time"

// Group is a named top-level namespace for standards. Its single-letter code
// prefixes the code of every standard assigned to the group.
type Group struct {
	Name        string    `json:"name" xml:"name,attr" yaml:"name"`
	Code        string    `json:"code" xml:"code,attr" yaml:"code"`
	Color       string    `json:"color,omitempty" xml:"color,attr,omitempty" yaml:"color,omitempty"`
	Description string    `json:"description,omitempty" xml:"description,omitempty" yaml:"description,omitempty"`
	Collapsed   bool      `json:"collapsed,omitempty" xml:"collapsed,attr,omitempty" yaml:"collapsed,omitempty"`
	Created     time.Time `json:"created" xml:"created,attr" yaml:"created"`
	Updated     time.Time `json:"updated" xml:"updated,attr" yaml:"updated"`
}

// GroupInfo contains basic information about a group.
type GroupInfo struct {
	Name        string
	Code        string
	Color       string
	Description string
	Collapsed   bool
}

// GroupFilter defines which GroupInfo fields an operation applies.
type GroupFilter struct {
	Name        bool
	Code        bool
	Color       bool
	Description bool
	Collapsed   bool
}
