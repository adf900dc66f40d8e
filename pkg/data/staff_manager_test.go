package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/model"
)

func TestStaffAdd(t *testing.T) {
	dm := newTestDataManager(t)

	t.Run("adds a member", func(t *testing.T) {
		member, err := dm.StaffManager.StaffAdd(model.StaffInfo{Name: "Dana Reyes", Role: "Trainer", Email: "dana@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Dana Reyes", member.Name)
		assert.Equal(t, "Trainer", member.Role)
		assert.Empty(t, member.Assessments)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := dm.StaffManager.StaffAdd(model.StaffInfo{})
		assert.ErrorIs(t, err, ErrMissingRequiredField)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		_, err := dm.StaffManager.StaffAdd(model.StaffInfo{Name: "Dana Reyes"})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestStaffListOrdersByName(t *testing.T) {
	dm := newTestDataManager(t)
	for _, name := range []string{"Sam Okoye", "Dana Reyes", "Lee Park"} {
		_, err := dm.StaffManager.StaffAdd(model.StaffInfo{Name: name})
		require.NoError(t, err)
	}

	staff := dm.StaffManager.StaffList()
	require.Len(t, staff, 3)
	assert.Equal(t, "Dana Reyes", staff[0].Name)
	assert.Equal(t, "Lee Park", staff[1].Name)
	assert.Equal(t, "Sam Okoye", staff[2].Name)
}

func TestStaffUpdate(t *testing.T) {
	dm := newTestDataManager(t)
	_, err := dm.StaffManager.StaffAdd(model.StaffInfo{Name: "Dana Reyes"})
	require.NoError(t, err)
	_, err = dm.StaffManager.StaffAdd(model.StaffInfo{Name: "Sam Okoye"})
	require.NoError(t, err)

	t.Run("renames and updates fields", func(t *testing.T) {
		err := dm.StaffManager.StaffUpdate("Dana Reyes",
			model.StaffInfo{Name: "Dana Reyes-Cole", Role: "Lead Trainer"},
			model.StaffFilter{Name: true, Role: true})
		require.NoError(t, err)

		member, err := dm.StaffManager.StaffGet("Dana Reyes-Cole")
		require.NoError(t, err)
		assert.Equal(t, "Lead Trainer", member.Role)

		_, err = dm.StaffManager.StaffGet("Dana Reyes")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects a taken name", func(t *testing.T) {
		err := dm.StaffManager.StaffUpdate("Sam Okoye",
			model.StaffInfo{Name: "Dana Reyes-Cole"}, model.StaffFilter{Name: true})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("unknown member", func(t *testing.T) {
		err := dm.StaffManager.StaffUpdate("Nobody",
			model.StaffInfo{Role: "x"}, model.StaffFilter{Role: true})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStaffDelete(t *testing.T) {
	dm := newTestDataManager(t)
	_, err := dm.StaffManager.StaffAdd(model.StaffInfo{Name: "Dana Reyes"})
	require.NoError(t, err)

	require.NoError(t, dm.StaffManager.StaffDelete("Dana Reyes"))
	_, err = dm.StaffManager.StaffGet("Dana Reyes")
	assert.ErrorIs(t, err, ErrNotFound)

	err = dm.StaffManager.StaffDelete("Dana Reyes")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssessmentSet(t *testing.T) {
	dm := newTestDataManager(t)
	seedCatalogue(t, dm)

	t.Run("records a new assessment", func(t *testing.T) {
		assessment, err := dm.StaffManager.AssessmentSet("Dana Reyes", "A.1", 2, "needs review")
		require.NoError(t, err)
		assert.Equal(t, 2, assessment.Score)
		assert.Equal(t, "needs review", assessment.Note)
		assert.False(t, assessment.Assessed.IsZero())
	})

	t.Run("replaces an existing assessment", func(t *testing.T) {
		_, err := dm.StaffManager.AssessmentSet("Dana Reyes", "A.1", 5, "")
		require.NoError(t, err)

		member, err := dm.StaffManager.StaffGet("Dana Reyes")
		require.NoError(t, err)
		assessment := member.AssessmentFor("A.1")
		require.NotNil(t, assessment)
		assert.Equal(t, 5, assessment.Score)
		assert.Empty(t, assessment.Note)

		// Still one entry per standard
		assessments, err := dm.StaffManager.AssessmentList("Dana Reyes")
		require.NoError(t, err)
		assert.Len(t, assessments, 2)
	})

	t.Run("rejects scores out of range", func(t *testing.T) {
		for _, score := range []int{0, 6, -1} {
			_, err := dm.StaffManager.AssessmentSet("Dana Reyes", "A.1", score, "")
			assert.ErrorIs(t, err, ErrInvalidScore, "score %d", score)
		}
	})

	t.Run("rejects an unknown standard", func(t *testing.T) {
		_, err := dm.StaffManager.AssessmentSet("Dana Reyes", "Z.1", 3, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects an unknown member", func(t *testing.T) {
		_, err := dm.StaffManager.AssessmentSet("Nobody", "A.1", 3, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssessmentDelete(t *testing.T) {
	dm := newTestDataManager(t)
	seedCatalogue(t, dm)

	require.NoError(t, dm.StaffManager.AssessmentDelete("Dana Reyes", "A.1.1"))

	assessments, err := dm.StaffManager.AssessmentList("Dana Reyes")
	require.NoError(t, err)
	assert.Empty(t, assessments)

	err = dm.StaffManager.AssessmentDelete("Dana Reyes", "A.1.1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssessmentListOrdersByCode(t *testing.T) {
	dm := newTestDataManager(t)
	seedCatalogue(t, dm)

	_, err := dm.StaffManager.AssessmentSet("Dana Reyes", "B.1", 3, "")
	require.NoError(t, err)
	_, err = dm.StaffManager.AssessmentSet("Dana Reyes", "A.1", 4, "")
	require.NoError(t, err)

	assessments, err := dm.StaffManager.AssessmentList("Dana Reyes")
	require.NoError(t, err)
	require.Len(t, assessments, 3)
	assert.Equal(t, "A.1", assessments[0].StandardCode)
	assert.Equal(t, "A.1.1", assessments[1].StandardCode)
	assert.Equal(t, "B.1", assessments[2].StandardCode)
}
