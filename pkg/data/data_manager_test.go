package data

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/storage"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "command.log",
		ErrorLog:   "error.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelDebug)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

func newTestDataManager(t *testing.T) *DataManager {
	t.Helper()
	return newTestDataManagerOn(t, storage.NewMemoryStore())
}

func newTestDataManagerOn(t *testing.T, store storage.Store) *DataManager {
	t.Helper()
	cfg := &model.Config{
		DefaultUser:       "admin",
		DefaultUserActive: true,
		DefaultGroupColor: "#4A90D9",
	}
	dm, err := NewDataManager(store, cfg, newTestLogger(t))
	require.NoError(t, err)
	return dm
}

// seedCatalogue builds a small forest with one assessed staff member: two
// groups, a three-node subtree under Safety and one top-level standard under
// Compliance.
func seedCatalogue(t *testing.T, dm *DataManager) {
	t.Helper()

	_, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Safety"})
	require.NoError(t, err)
	_, err = dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Compliance"})
	require.NoError(t, err)

	_, err = dm.StandardManager.StandardAdd(model.StandardInfo{Name: "Site safety", Group: "Safety"})
	require.NoError(t, err)
	_, err = dm.StandardManager.StandardAdd(model.StandardInfo{Name: "Protective equipment", ParentCode: "A.1"})
	require.NoError(t, err)
	_, err = dm.StandardManager.StandardAdd(model.StandardInfo{Name: "Helmet fitting", ParentCode: "A.1.1"})
	require.NoError(t, err)
	_, err = dm.StandardManager.StandardAdd(model.StandardInfo{Name: "Record keeping", Group: "Compliance"})
	require.NoError(t, err)

	_, err = dm.StaffManager.StaffAdd(model.StaffInfo{Name: "Dana Reyes", Role: "Trainer"})
	require.NoError(t, err)
	_, err = dm.StaffManager.AssessmentSet("Dana Reyes", "A.1.1", 4, "solid")
	require.NoError(t, err)
}

func TestNewDataManagerDefaultUser(t *testing.T) {
	store := storage.NewMemoryStore()
	dm := newTestDataManagerOn(t, store)

	user, err := dm.UserManager.UserGet("admin")
	require.NoError(t, err)
	assert.True(t, user.Active)

	// A second start on the same store must not duplicate the default user
	dm2 := newTestDataManagerOn(t, store)
	assert.Len(t, dm2.UserManager.UserList(), 1)
}

func TestCataloguePersistsAcrossRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	first := newTestDataManagerOn(t, store)
	seedCatalogue(t, first)
	require.NoError(t, first.StandardManager.CollapseSet("A.1.1", true))

	second := newTestDataManagerOn(t, store)

	if diff := cmp.Diff(first.CatalogueSnapshot(), second.CatalogueSnapshot()); diff != "" {
		t.Errorf("catalogue changed across restart (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"A.1.1"}, second.StandardManager.CollapseList())
}

func TestNewDataManagerDefaultGroupColor(t *testing.T) {
	dm := newTestDataManager(t)

	group, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Safety"})
	require.NoError(t, err)
	assert.Equal(t, "#4A90D9", group.Color)

	colored, err := dm.GroupManager.GroupAdd(model.GroupInfo{Name: "Compliance", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", colored.Color)
}

func TestCatalogueExportImportRoundTrip(t *testing.T) {
	source := newTestDataManager(t)
	seedCatalogue(t, source)

	filename := filepath.Join(t.TempDir(), "catalogue.json")
	require.NoError(t, source.CatalogueExport(filename, "json"))

	target := newTestDataManager(t)
	_, err := target.GroupManager.GroupAdd(model.GroupInfo{Name: "Obsolete"})
	require.NoError(t, err)

	imported, err := target.CatalogueImport(filename, "json")
	require.NoError(t, err)
	assert.Len(t, imported.Groups, 2)
	assert.Len(t, imported.Standards, 4)
	assert.Len(t, imported.Staff, 1)

	// The import replaces state wholesale
	groups := target.GroupManager.GroupList()
	require.Len(t, groups, 2)
	assert.Equal(t, "Safety", groups[0].Name)
	_, err = target.GroupManager.GroupGet("Obsolete")
	assert.ErrorIs(t, err, ErrNotFound)

	// Children caches are rebuilt from parent references
	parent, err := target.StandardManager.StandardGet("A.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.1.1"}, parent.Children)

	assessments, err := target.StaffManager.AssessmentList("Dana Reyes")
	require.NoError(t, err)
	require.Len(t, assessments, 1)
	assert.Equal(t, "A.1.1", assessments[0].StandardCode)
	assert.Equal(t, 4, assessments[0].Score)
}

func TestCatalogueImportRejectsInvalidStructures(t *testing.T) {
	tests := []struct {
		name      string
		catalogue *model.Catalogue
		wantErr   error
	}{
		{
			name: "duplicate group code",
			catalogue: &model.Catalogue{
				Groups: []*model.Group{{Name: "Safety", Code: "A"}, {Name: "Compliance", Code: "A"}},
			},
			wantErr: ErrDuplicateGroup,
		},
		{
			name: "duplicate standard code",
			catalogue: &model.Catalogue{
				Groups: []*model.Group{{Name: "Safety", Code: "A"}},
				Standards: []*model.Standard{
					{Code: "A.1", Name: "First", Group: "Safety"},
					{Code: "A.1", Name: "Second", Group: "Safety"},
				},
			},
			wantErr: ErrDuplicateCode,
		},
		{
			name: "missing parent",
			catalogue: &model.Catalogue{
				Groups:    []*model.Group{{Name: "Safety", Code: "A"}},
				Standards: []*model.Standard{{Code: "A.1.1", Name: "Orphan", Group: "Safety", ParentCode: "A.1"}},
			},
			wantErr: ErrReferentialIntegrity,
		},
		{
			name: "code does not extend parent",
			catalogue: &model.Catalogue{
				Groups: []*model.Group{{Name: "Safety", Code: "A"}},
				Standards: []*model.Standard{
					{Code: "A.1", Name: "Parent", Group: "Safety"},
					{Code: "A.9.1", Name: "Stray", Group: "Safety", ParentCode: "A.1"},
				},
			},
			wantErr: ErrMalformedCode,
		},
		{
			name: "child group differs from parent group",
			catalogue: &model.Catalogue{
				Groups: []*model.Group{{Name: "Safety", Code: "A"}, {Name: "Compliance", Code: "B"}},
				Standards: []*model.Standard{
					{Code: "A.1", Name: "Parent", Group: "Safety"},
					{Code: "A.1.1", Name: "Child", Group: "Compliance", ParentCode: "A.1"},
				},
			},
			wantErr: ErrMalformedCode,
		},
		{
			name: "top-level standard references missing group",
			catalogue: &model.Catalogue{
				Standards: []*model.Standard{{Code: "A.1", Name: "Stray", Group: "Safety"}},
			},
			wantErr: ErrReferentialIntegrity,
		},
		{
			name: "assessment score out of range",
			catalogue: &model.Catalogue{
				Groups:    []*model.Group{{Name: "Safety", Code: "A"}},
				Standards: []*model.Standard{{Code: "A.1", Name: "First", Group: "Safety"}},
				Staff: []*model.Staff{{
					Name:        "Dana Reyes",
					Assessments: []*model.Assessment{{StandardCode: "A.1", Score: 6}},
				}},
			},
			wantErr: ErrInvalidScore,
		},
		{
			name: "duplicate staff name",
			catalogue: &model.Catalogue{
				Staff: []*model.Staff{{Name: "Dana Reyes"}, {Name: "Dana Reyes"}},
			},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dm := newTestDataManager(t)
			seedCatalogue(t, dm)

			filename := filepath.Join(t.TempDir(), "import.json")
			require.NoError(t, storage.FileExport(tt.catalogue, filename, "json"))

			_, err := dm.CatalogueImport(filename, "json")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			// A rejected import leaves the current state untouched
			assert.Len(t, dm.GroupManager.GroupList(), 2)
			assert.Len(t, dm.StandardManager.StandardList(), 4)
		})
	}
}

func TestCatalogueImportNormalizes(t *testing.T) {
	catalogue := &model.Catalogue{
		Groups: []*model.Group{{Name: "Safety", Code: "A"}},
		Standards: []*model.Standard{
			{Code: "A.1", Name: "Site safety", Group: "Safety", Level: 9},
			{Code: "A.1.1", Name: "Protective equipment", Group: "Safety", ParentCode: "A.1"},
		},
		Staff: []*model.Staff{{
			Name: "Dana Reyes",
			Assessments: []*model.Assessment{
				{StandardCode: "A.1.1", Score: 3},
				{StandardCode: "Z.9", Score: 5},
			},
		}},
	}
	filename := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, storage.FileExport(catalogue, filename, "json"))

	dm := newTestDataManager(t)
	_, err := dm.CatalogueImport(filename, "json")
	require.NoError(t, err)

	// Levels are recomputed from the codes
	standard, err := dm.StandardManager.StandardGet("A.1")
	require.NoError(t, err)
	assert.Equal(t, 1, standard.Level)

	// Assessments of standards absent from the import are dropped
	assessments, err := dm.StaffManager.AssessmentList("Dana Reyes")
	require.NoError(t, err)
	require.Len(t, assessments, 1)
	assert.Equal(t, "A.1.1", assessments[0].StandardCode)
}

func TestCatalogueSnapshotExcludesUsers(t *testing.T) {
	dm := newTestDataManager(t)
	seedCatalogue(t, dm)

	snapshot := dm.CatalogueSnapshot()
	assert.Len(t, snapshot.Groups, 2)
	assert.Len(t, snapshot.Standards, 4)
	assert.Len(t, snapshot.Staff, 1)
}
