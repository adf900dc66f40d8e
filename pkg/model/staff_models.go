// Package model defines the data structures used throughout the Skillscape application.
package model

import "time"

// Staff represents a staff member tracked against the standards catalogue.
type Staff struct {
	Name        string        `json:"name" xml:"name,attr" yaml:"name"`
	Role        string        `json:"role,omitempty" xml:"role,attr,omitempty" yaml:"role,omitempty"`
	Email       string        `json:"email,omitempty" xml:"email,attr,omitempty" yaml:"email,omitempty"`
	Assessments []*Assessment `json:"assessments,omitempty" xml:"assessments>assessment,omitempty" yaml:"assessments,omitempty"`
	Created     time.Time     `json:"created" xml:"created,attr" yaml:"created"`
	Updated     time.Time     `json:"updated" xml:"updated,attr" yaml:"updated"`
}

// Assessment records a staff member's level against one standard. It is keyed
// by the standard's current code and follows the code through cascades.
type Assessment struct {
	StandardCode string    `json:"standard_code" xml:"standard_code,attr" yaml:"standard_code"`
	Score        int       `json:"score" xml:"score,attr" yaml:"score"`
	Note         string    `json:"note,omitempty" xml:"note,omitempty" yaml:"note,omitempty"`
	Assessed     time.Time `json:"assessed" xml:"assessed,attr" yaml:"assessed"`
}

// AssessmentFor returns the assessment for the given standard code, or nil.
func (s *Staff) AssessmentFor(code string) *Assessment {
	for _, a := range s.Assessments {
		if a.StandardCode == code {
			return a
		}
	}
	return nil
}

// StaffInfo contains basic information about a staff member.
type StaffInfo struct {
	Name            string
	Role            string
	Email           string
	AssessmentCount *int
}

// StaffFilter defines which StaffInfo fields an update applies.
type StaffFilter struct {
	Name  bool
	Role  bool
	Email bool
}
