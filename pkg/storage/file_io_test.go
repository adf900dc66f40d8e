package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/model"
)

func sampleCatalogue() *model.Catalogue {
	return &model.Catalogue{
		Groups: []*model.Group{
			{Name: "Safety", Code: "A", Color: "#4A90D9"},
		},
		Standards: []*model.Standard{
			{Name: "Site safety", Code: "A.1", Group: "Safety", Level: 1},
			{Name: "Protective equipment", Code: "A.1.1", Group: "Safety", ParentCode: "A.1", Level: 2},
		},
		Staff: []*model.Staff{
			{Name: "Dana Reyes", Role: "Trainer", Assessments: []*model.Assessment{
				{StandardCode: "A.1.1", Score: 4, Note: "solid"},
			}},
		},
	}
}

func TestFileExportImport(t *testing.T) {
	for _, format := range []string{"json", "yaml", "xml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalogue."+format)
			require.NoError(t, FileExport(sampleCatalogue(), path, format))

			imported, err := FileImport(path, format)
			require.NoError(t, err)

			require.Len(t, imported.Groups, 1)
			assert.Equal(t, "Safety", imported.Groups[0].Name)
			require.Len(t, imported.Standards, 2)
			assert.Equal(t, "A.1.1", imported.Standards[1].Code)
			assert.Equal(t, "A.1", imported.Standards[1].ParentCode)
			require.Len(t, imported.Staff, 1)
			require.Len(t, imported.Staff[0].Assessments, 1)
			assert.Equal(t, 4, imported.Staff[0].Assessments[0].Score)
		})
	}
}

func TestFileExportCreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "catalogue.json")
	require.NoError(t, FileExport(sampleCatalogue(), path, "json"))

	imported, err := FileImport(path, "json")
	require.NoError(t, err)
	assert.Len(t, imported.Standards, 2)
}

func TestFileExportUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.csv")
	err := FileExport(sampleCatalogue(), path, "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFileImportErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := FileImport(filepath.Join(t.TempDir(), "nope.json"), "json")
		assert.Error(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalogue.json")
		require.NoError(t, FileExport(sampleCatalogue(), path, "json"))

		_, err := FileImport(path, "csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}
