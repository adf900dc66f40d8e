// Package model defines the data structures used throughout the Skillscape application.
package model

import "time"

// Standard represents a single competency node in the classification forest.
// The code doubles as identity and path: it starts with the group letter and
// encodes the position under the parent (e.g. "A.1.2").
type Standard struct {
	Code        string    `json:"code" xml:"code,attr" yaml:"code"`
	Name        string    `json:"name" xml:"name,attr" yaml:"name"`
	Description string    `json:"description,omitempty" xml:"description,omitempty" yaml:"description,omitempty"`
	Group       string    `json:"group,omitempty" xml:"group,attr,omitempty" yaml:"group,omitempty"`
	ParentCode  string    `json:"parent_code,omitempty" xml:"parent_code,attr,omitempty" yaml:"parent_code,omitempty"`
	Children    []string  `json:"children,omitempty" xml:"children>code,omitempty" yaml:"children,omitempty"`
	Level       int       `json:"level" xml:"level,attr" yaml:"level"`
	Created     time.Time `json:"created" xml:"created,attr" yaml:"created"`
	Updated     time.Time `json:"updated" xml:"updated,attr" yaml:"updated"`
}

// StandardInfo contains the caller-settable fields of a standard.
type StandardInfo struct {
	Code        string
	Name        string
	Description string
	Group       string
	ParentCode  string
}

// StandardFilter defines which StandardInfo fields an update applies.
type StandardFilter struct {
	Code        bool
	Name        bool
	Description bool
	Group       bool
	ParentCode  bool
}
