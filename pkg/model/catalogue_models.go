// Package model defines the data structures used throughout the Skillscape application.
package model

// Catalogue is the full exportable snapshot of the standards data: all groups,
// all standards, and all staff with their assessments. Users are deliberately
// excluded from exports.
type Catalogue struct {
	Groups    []*Group    `json:"groups" xml:"groups>group" yaml:"groups"`
	Standards []*Standard `json:"standards" xml:"standards>standard" yaml:"standards"`
	Staff     []*Staff    `json:"staff,omitempty" xml:"staff>member,omitempty" yaml:"staff,omitempty"`
}
