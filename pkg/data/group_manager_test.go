package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/model"
)

func TestGroupAdd(t *testing.T) {
	dm := newTestDataManager(t)

	t.Run("assigns the lowest unused letter", func(t *testing.T) {
		safety, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Safety"})
		require.NoError(t, err)
		assert.Equal(t, "A", safety.Code)

		compliance, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Compliance"})
		require.NoError(t, err)
		assert.Equal(t, "B", compliance.Code)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := dm.GroupManager.GroupAdd(model.GroupInfo{})
		assert.ErrorIs(t, err, ErrMissingRequiredField)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		_, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Safety"})
		assert.ErrorIs(t, err, ErrDuplicateGroup)
	})

	t.Run("reuses a freed letter", func(t *testing.T) {
		require.NoError(t, dm.GroupManager.GroupDelete("Safety"))
		operations, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Operations"})
		require.NoError(t, err)
		assert.Equal(t, "A", operations.Code)
	})
}

func TestGroupGet(t *testing.T) {
	dm := newTestDataManager(t)
	_, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Safety"})
	require.NoError(t, err)

	group, err := dm.GroupManager.GroupGet("Safety")
	require.NoError(t, err)
	assert.Equal(t, "A", group.Code)

	byCode, err := dm.GroupManager.GroupGetByCode("A")
	require.NoError(t, err)
	assert.Equal(t, "Safety", byCode.Name)

	_, err = dm.GroupManager.GroupGet("Nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = dm.GroupManager.GroupGetByCode("Z")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupListOrdersByCode(t *testing.T) {
	dm := newTestDataManager(t)
	for _, name := range []string{"Zulu", "Alpha", "Mike"} {
		_, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: name})
		require.NoError(t, err)
	}

	groups := dm.GroupManager.GroupList()
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{groups[0].Code, groups[1].Code, groups[2].Code})
	assert.Equal(t, []string{"Zulu", "Alpha", "Mike"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})
}

func TestGroupUpdate(t *testing.T) {
	t.Run("rename cascades to member standards", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		err := dm.GroupManager.GroupUpdate("Safety",
			model.GroupInfo{Name: "Site Safety"}, model.GroupFilter{Name: true})
		require.NoError(t, err)

		_, err = dm.GroupManager.GroupGet("Safety")
		assert.ErrorIs(t, err, ErrNotFound)

		for _, code := range []string{"A.1", "A.1.1", "A.1.1.1"} {
			standard, err := dm.StandardManager.StandardGet(code)
			require.NoError(t, err)
			assert.Equal(t, "Site Safety", standard.Group, "standard %s", code)
		}
	})

	t.Run("rejects a taken name", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		err := dm.GroupManager.GroupUpdate("Safety",
			model.GroupInfo{Name: "Compliance"}, model.GroupFilter{Name: true})
		assert.ErrorIs(t, err, ErrDuplicateGroup)
	})

	t.Run("rejects code changes", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		err := dm.GroupManager.GroupUpdate("Safety",
			model.GroupInfo{Code: "C"}, model.GroupFilter{Code: true})
		assert.Error(t, err)
	})

	t.Run("updates color and description", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		err := dm.GroupManager.GroupUpdate("Safety",
			model.GroupInfo{Color: "#00FF00", Description: "on site"},
			model.GroupFilter{Color: true, Description: true})
		require.NoError(t, err)

		group, err := dm.GroupManager.GroupGet("Safety")
		require.NoError(t, err)
		assert.Equal(t, "#00FF00", group.Color)
		assert.Equal(t, "on site", group.Description)
	})
}

func TestGroupRecode(t *testing.T) {
	t.Run("cascades through standards and assessments", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		require.NoError(t, dm.GroupManager.GroupRecode("Safety", "D"))

		group, err := dm.GroupManager.GroupGet("Safety")
		require.NoError(t, err)
		assert.Equal(t, "D", group.Code)

		for _, code := range []string{"D.1", "D.1.1", "D.1.1.1"} {
			_, err := dm.StandardManager.StandardGet(code)
			assert.NoError(t, err, "standard %s", code)
		}
		_, err = dm.StandardManager.StandardGet("A.1")
		assert.ErrorIs(t, err, ErrNotFound)

		assessments, err := dm.StaffManager.AssessmentList("Dana Reyes")
		require.NoError(t, err)
		require.Len(t, assessments, 1)
		assert.Equal(t, "D.1.1", assessments[0].StandardCode)
	})

	t.Run("rejects a letter assigned to another group", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		err := dm.GroupManager.GroupRecode("Safety", "B")
		assert.ErrorIs(t, err, ErrDuplicateGroup)
	})

	t.Run("rejects malformed letters", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		for _, code := range []string{"", "a", "AB", "1"} {
			err := dm.GroupManager.GroupRecode("Safety", code)
			assert.ErrorIs(t, err, ErrMalformedCode, "code %q", code)
		}
	})

	t.Run("same letter is a no-op", func(t *testing.T) {
		dm := newTestDataManager(t)
		seedCatalogue(t, dm)

		require.NoError(t, dm.GroupManager.GroupRecode("Safety", "A"))
		_, err := dm.StandardManager.StandardGet("A.1")
		assert.NoError(t, err)
	})
}

func TestGroupDelete(t *testing.T) {
	dm := newTestDataManager(t)
	seedCatalogue(t, dm)

	t.Run("rejected while standards remain", func(t *testing.T) {
		err := dm.GroupManager.GroupDelete("Safety")
		assert.ErrorIs(t, err, ErrReferentialIntegrity)
	})

	t.Run("removes an empty group", func(t *testing.T) {
		require.NoError(t, dm.StandardManager.StandardDeleteCascade("A.1"))
		require.NoError(t, dm.GroupManager.GroupDelete("Safety"))

		_, err := dm.GroupManager.GroupGet("Safety")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing group", func(t *testing.T) {
		err := dm.GroupManager.GroupDelete("Nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
