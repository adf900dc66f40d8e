// Package ui renders command results for the terminal frontend.
// This file contains the CatalogueUI struct and methods for visualizing the
// standards catalogue.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"skillscape/local-app/pkg/data"
	"skillscape/local-app/pkg/model"
)

// CatalogueUI handles the visualization of groups, standards and staff.
type CatalogueUI struct {
	visualizer *Visualizer
}

// NewCatalogueUI creates a new CatalogueUI instance.
func NewCatalogueUI(w io.Writer, useColor bool) *CatalogueUI {
	return &CatalogueUI{
		visualizer: NewVisualizer(w, useColor),
	}
}

// GroupList displays a list of groups
func (cui *CatalogueUI) GroupList(groups []*model.Group) {
	if len(groups) == 0 {
		cui.visualizer.Println("No groups available")
		return
	}

	cui.visualizer.Println("Available groups:")
	for _, group := range groups {
		cui.visualizer.PrintColored("■ ", ColorFromHex(group.Color))
		cui.visualizer.Printf("%s (%s)", group.Name, group.Code)
		if group.Description != "" {
			cui.visualizer.Printf(" - %s", group.Description)
		}
		cui.visualizer.Println("")
	}
}

// StandardList displays a flat listing of standards indented by level
func (cui *CatalogueUI) StandardList(standards []*model.Standard) {
	if len(standards) == 0 {
		cui.visualizer.Println("No standards available")
		return
	}

	cui.visualizer.Println("Available standards:")
	for _, standard := range standards {
		indent := ""
		if standard.Level > 1 {
			indent = strings.Repeat("  ", standard.Level-1)
		}
		line := fmt.Sprintf("%s{{yellow}}%s{{default}} %s", indent, standard.Code, standard.Name)
		cui.visualizer.PrintMultiColoredLine(line, cui.getColorMap())
	}
}

// StaffList displays a list of staff members
func (cui *CatalogueUI) StaffList(staff []*model.Staff) {
	if len(staff) == 0 {
		cui.visualizer.Println("No staff members found")
		return
	}

	cui.visualizer.Println("Staff members:")
	for _, member := range staff {
		cui.visualizer.Printf("- %s", member.Name)
		if member.Role != "" {
			cui.visualizer.Printf(" (%s)", member.Role)
		}
		if member.Email != "" {
			cui.visualizer.Printf(" <%s>", member.Email)
		}
		cui.visualizer.Printf(", %d assessments\n", len(member.Assessments))
	}
}

// UserList displays a list of user accounts
func (cui *CatalogueUI) UserList(users []model.UserInfo) {
	if len(users) == 0 {
		cui.visualizer.Println("No users found")
		return
	}

	cui.visualizer.Println("Users:")
	for _, user := range users {
		cui.visualizer.Printf("- %s", user.Username)
		if !user.Active {
			cui.visualizer.PrintColored(" (inactive)", ColorGray)
		}
		cui.visualizer.Println("")
	}
}

// TreeView displays groups and standards as a tree. Collapsed standards show
// a [+] marker and hide their subtree unless the view asks for everything.
func (cui *CatalogueUI) TreeView(view *model.TreeView) {
	byParent := make(map[string][]*model.Standard)
	byCode := make(map[string]*model.Standard)
	for _, standard := range view.Standards {
		byCode[standard.Code] = standard
		if standard.ParentCode != "" {
			byParent[standard.ParentCode] = append(byParent[standard.ParentCode], standard)
		}
	}
	for code := range byParent {
		children := byParent[code]
		sort.Slice(children, func(i, j int) bool {
			return data.CompareCodes(children[i].Code, children[j].Code) < 0
		})
	}

	var output []string

	// Helper function to build the tree
	var buildTree func(standard *model.Standard, prefix string, isLast bool)
	buildTree = func(standard *model.Standard, prefix string, isLast bool) {
		var line strings.Builder
		line.WriteString(prefix)

		if isLast {
			line.WriteString("{{brown}}└── {{default}}")
			prefix += "    "
		} else {
			line.WriteString("{{brown}}├── {{default}}")
			prefix += "{{brown}}│   {{default}}"
		}

		line.WriteString(fmt.Sprintf("{{yellow}}%s{{default}}", standard.Code))
		line.WriteString(" " + standard.Name)

		collapsed := view.Collapsed[standard.Code]
		if collapsed {
			line.WriteString(" {{orange}}[+]{{default}}")
		}

		output = append(output, line.String())

		if collapsed && !view.ShowAll {
			return
		}
		children := byParent[standard.Code]
		for i, child := range children {
			buildTree(child, prefix, i == len(children)-1)
		}
	}

	flush := func() {
		for _, line := range output {
			cui.visualizer.PrintMultiColoredLine(line, cui.getColorMap())
		}
		output = output[:0]
	}

	// A single subtree
	if view.RootCode != "" {
		root, ok := byCode[view.RootCode]
		if !ok {
			cui.visualizer.Printf("Standard not found: %s\n", view.RootCode)
			return
		}
		if len(view.Groups) > 0 {
			cui.groupHeader(view.Groups[0])
		}
		buildTree(root, "", true)
		flush()
		return
	}

	if len(view.Groups) == 0 {
		cui.visualizer.Println("No groups available")
		return
	}

	// The whole forest, one tree per group
	for _, group := range view.Groups {
		cui.groupHeader(group)

		var tops []*model.Standard
		for _, standard := range view.Standards {
			if standard.ParentCode == "" && standard.Group == group.Name {
				tops = append(tops, standard)
			}
		}
		sort.Slice(tops, func(i, j int) bool {
			return data.CompareCodes(tops[i].Code, tops[j].Code) < 0
		})

		for i, top := range tops {
			buildTree(top, "", i == len(tops)-1)
		}
		flush()
	}
}

// StaffView displays one staff member with their assessment table
func (cui *CatalogueUI) StaffView(view *model.StaffView) {
	member := view.Member
	cui.visualizer.Printf("Staff member: %s\n", member.Name)
	if member.Role != "" {
		cui.visualizer.Printf("Role: %s\n", member.Role)
	}
	if member.Email != "" {
		cui.visualizer.Printf("Email: %s\n", member.Email)
	}

	if len(member.Assessments) == 0 {
		cui.visualizer.Println("No assessments recorded")
		return
	}

	cui.visualizer.Println("Assessments:")
	cui.visualizer.Printf("  %-12s %-6s %-40s %s\n", "CODE", "SCORE", "STANDARD", "NOTE")
	for _, assessment := range member.Assessments {
		name := ""
		if standard, ok := view.Standards[assessment.StandardCode]; ok {
			name = standard.Name
		}
		cui.visualizer.Printf("  %-12s ", assessment.StandardCode)
		cui.visualizer.PrintColored(fmt.Sprintf("%-6d", assessment.Score), ScoreColor(assessment.Score))
		cui.visualizer.Printf(" %-40s %s\n", name, assessment.Note)
	}
}

// getColorMap returns a map of color codes used in the tree visualization.
func (cui *CatalogueUI) getColorMap() map[string]Color {
	return map[string]Color{
		"{{yellow}}":  ColorYellow,
		"{{orange}}":  ColorOrange,
		"{{brown}}":   ColorBrown,
		"{{default}}": ColorDefault,
	}
}

// groupHeader prints a group heading colored with the group's own color
func (cui *CatalogueUI) groupHeader(group *model.Group) {
	header := fmt.Sprintf("%s (%s)", group.Name, group.Code)
	cui.visualizer.PrintlnColored(header, ColorFromHex(group.Color))
}
