// Package model defines the data structures used throughout the Skillscape application.
package model

// TreeView is the result payload of group and standard view commands: the
// groups and standards to render plus the collapse state that shapes the
// rendering. RootCode narrows the view to one subtree when set.
type TreeView struct {
	Groups    []*Group
	Standards []*Standard
	Collapsed map[string]bool
	RootCode  string
	ShowAll   bool
}

// StaffView is the result payload of the staff view command: one member and
// the standards their assessments refer to, keyed by standard code.
type StaffView struct {
	Member    *Staff
	Standards map[string]*Standard
}
