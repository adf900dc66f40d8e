package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/model"
)

// render runs one CatalogueUI call against a plain buffer without color.
func render(fn func(*CatalogueUI)) string {
	var buf bytes.Buffer
	cui := NewCatalogueUI(&buf, false)
	fn(cui)
	return buf.String()
}

func treeStandards() []*model.Standard {
	return []*model.Standard{
		{Code: "A.1", Name: "Site safety", Group: "Safety", Level: 1},
		{Code: "A.1.1", Name: "Protective equipment", Group: "Safety", ParentCode: "A.1", Level: 2},
		{Code: "A.1.1.1", Name: "Helmet fitting", Group: "Safety", ParentCode: "A.1.1", Level: 3},
		{Code: "A.1.2", Name: "Signage", Group: "Safety", ParentCode: "A.1", Level: 2},
	}
}

func safetyGroup() *model.Group {
	return &model.Group{Name: "Safety", Code: "A", Color: "#4A90D9"}
}

func TestGroupListRender(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := render(func(cui *CatalogueUI) { cui.GroupList(nil) })
		assert.Equal(t, "No groups available\n", out)
	})

	t.Run("with groups", func(t *testing.T) {
		groups := []*model.Group{
			{Name: "Safety", Code: "A", Description: "Site rules"},
			{Name: "Compliance", Code: "B"},
		}
		out := render(func(cui *CatalogueUI) { cui.GroupList(groups) })
		assert.Equal(t, "Available groups:\n■ Safety (A) - Site rules\n■ Compliance (B)\n", out)
	})

	t.Run("group color is applied to the marker", func(t *testing.T) {
		var buf bytes.Buffer
		cui := NewCatalogueUI(&buf, true)
		cui.GroupList([]*model.Group{safetyGroup()})
		assert.Contains(t, buf.String(), "\033[38;2;74;144;217m■ \033[0m")
	})
}

func TestStandardListRender(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := render(func(cui *CatalogueUI) { cui.StandardList(nil) })
		assert.Equal(t, "No standards available\n", out)
	})

	t.Run("indents by level", func(t *testing.T) {
		out := render(func(cui *CatalogueUI) { cui.StandardList(treeStandards()) })
		assert.Equal(t, "Available standards:\n"+
			"A.1 Site safety\n"+
			"  A.1.1 Protective equipment\n"+
			"    A.1.1.1 Helmet fitting\n"+
			"  A.1.2 Signage\n", out)
	})
}

func TestStaffListRender(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := render(func(cui *CatalogueUI) { cui.StaffList(nil) })
		assert.Equal(t, "No staff members found\n", out)
	})

	t.Run("with members", func(t *testing.T) {
		staff := []*model.Staff{
			{Name: "Dana Reyes", Role: "Trainer", Email: "dana@example.com", Assessments: []*model.Assessment{
				{StandardCode: "A.1", Score: 4}, {StandardCode: "A.1.1", Score: 3},
			}},
			{Name: "Lee Park"},
		}
		out := render(func(cui *CatalogueUI) { cui.StaffList(staff) })
		assert.Equal(t, "Staff members:\n"+
			"- Dana Reyes (Trainer) <dana@example.com>, 2 assessments\n"+
			"- Lee Park, 0 assessments\n", out)
	})
}

func TestUserListRender(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := render(func(cui *CatalogueUI) { cui.UserList(nil) })
		assert.Equal(t, "No users found\n", out)
	})

	t.Run("marks inactive users", func(t *testing.T) {
		users := []model.UserInfo{
			{Username: "admin", Active: true},
			{Username: "parked", Active: false},
		}
		out := render(func(cui *CatalogueUI) { cui.UserList(users) })
		assert.Equal(t, "Users:\n- admin\n- parked (inactive)\n", out)
	})
}

func TestTreeViewRender(t *testing.T) {
	t.Run("full tree", func(t *testing.T) {
		view := &model.TreeView{
			Groups:    []*model.Group{safetyGroup()},
			Standards: treeStandards(),
			Collapsed: map[string]bool{},
		}
		out := render(func(cui *CatalogueUI) { cui.TreeView(view) })
		assert.Equal(t, "Safety (A)\n"+
			"└── A.1 Site safety\n"+
			"    ├── A.1.1 Protective equipment\n"+
			"    │   └── A.1.1.1 Helmet fitting\n"+
			"    └── A.1.2 Signage\n", out)
	})

	t.Run("collapsed standard hides its subtree", func(t *testing.T) {
		view := &model.TreeView{
			Groups:    []*model.Group{safetyGroup()},
			Standards: treeStandards(),
			Collapsed: map[string]bool{"A.1.1": true},
		}
		out := render(func(cui *CatalogueUI) { cui.TreeView(view) })
		assert.Equal(t, "Safety (A)\n"+
			"└── A.1 Site safety\n"+
			"    ├── A.1.1 Protective equipment [+]\n"+
			"    └── A.1.2 Signage\n", out)
	})

	t.Run("show all overrides the collapse state", func(t *testing.T) {
		view := &model.TreeView{
			Groups:    []*model.Group{safetyGroup()},
			Standards: treeStandards(),
			Collapsed: map[string]bool{"A.1.1": true},
			ShowAll:   true,
		}
		out := render(func(cui *CatalogueUI) { cui.TreeView(view) })
		assert.Equal(t, "Safety (A)\n"+
			"└── A.1 Site safety\n"+
			"    ├── A.1.1 Protective equipment [+]\n"+
			"    │   └── A.1.1.1 Helmet fitting\n"+
			"    └── A.1.2 Signage\n", out)
	})

	t.Run("root code narrows to one subtree", func(t *testing.T) {
		view := &model.TreeView{
			Groups:    []*model.Group{safetyGroup()},
			Standards: treeStandards(),
			RootCode:  "A.1.1",
		}
		out := render(func(cui *CatalogueUI) { cui.TreeView(view) })
		assert.Equal(t, "Safety (A)\n"+
			"└── A.1.1 Protective equipment\n"+
			"    └── A.1.1.1 Helmet fitting\n", out)
	})

	t.Run("unknown root code", func(t *testing.T) {
		view := &model.TreeView{
			Groups:    []*model.Group{safetyGroup()},
			Standards: treeStandards(),
			RootCode:  "Z.9",
		}
		out := render(func(cui *CatalogueUI) { cui.TreeView(view) })
		assert.Equal(t, "Standard not found: Z.9\n", out)
	})

	t.Run("one tree per group", func(t *testing.T) {
		view := &model.TreeView{
			Groups: []*model.Group{
				safetyGroup(),
				{Name: "Compliance", Code: "B"},
			},
			Standards: []*model.Standard{
				{Code: "A.1", Name: "Site safety", Group: "Safety", Level: 1},
				{Code: "B.1", Name: "Record keeping", Group: "Compliance", Level: 1},
				{Code: "B.2", Name: "Audits", Group: "Compliance", Level: 1},
			},
		}
		out := render(func(cui *CatalogueUI) { cui.TreeView(view) })
		assert.Equal(t, "Safety (A)\n"+
			"└── A.1 Site safety\n"+
			"Compliance (B)\n"+
			"├── B.1 Record keeping\n"+
			"└── B.2 Audits\n", out)
	})

	t.Run("no groups", func(t *testing.T) {
		out := render(func(cui *CatalogueUI) { cui.TreeView(&model.TreeView{}) })
		assert.Equal(t, "No groups available\n", out)
	})
}

func TestStaffViewRender(t *testing.T) {
	t.Run("without assessments", func(t *testing.T) {
		view := &model.StaffView{
			Member:    &model.Staff{Name: "Dana Reyes", Role: "Trainer"},
			Standards: map[string]*model.Standard{},
		}
		out := render(func(cui *CatalogueUI) { cui.StaffView(view) })
		assert.Equal(t, "Staff member: Dana Reyes\nRole: Trainer\nNo assessments recorded\n", out)
	})

	t.Run("with assessments", func(t *testing.T) {
		view := &model.StaffView{
			Member: &model.Staff{
				Name:  "Dana Reyes",
				Role:  "Trainer",
				Email: "dana@example.com",
				Assessments: []*model.Assessment{
					{StandardCode: "A.1.1", Score: 4, Note: "solid"},
					{StandardCode: "B.1", Score: 2},
				},
			},
			Standards: map[string]*model.Standard{
				"A.1.1": {Code: "A.1.1", Name: "Protective equipment"},
				"B.1":   {Code: "B.1", Name: "Record keeping"},
			},
		}
		out := render(func(cui *CatalogueUI) { cui.StaffView(view) })

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 7)
		assert.Equal(t, "Staff member: Dana Reyes", lines[0])
		assert.Equal(t, "Role: Trainer", lines[1])
		assert.Equal(t, "Email: dana@example.com", lines[2])
		assert.Equal(t, "Assessments:", lines[3])
		assert.Equal(t, []string{"CODE", "SCORE", "STANDARD", "NOTE"}, strings.Fields(lines[4]))
		assert.Contains(t, lines[5], "A.1.1")
		assert.Contains(t, lines[5], "Protective equipment")
		assert.Contains(t, lines[5], "solid")
		assert.Contains(t, lines[6], "B.1")
		assert.Contains(t, lines[6], "Record keeping")
	})
}
