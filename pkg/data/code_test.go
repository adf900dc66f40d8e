package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillscape/local-app/pkg/model"
)

func TestLevelOf(t *testing.T) {
	assert.Equal(t, 0, LevelOf("A"))
	assert.Equal(t, 1, LevelOf("A.1"))
	assert.Equal(t, 2, LevelOf("A.1.2"))
	assert.Equal(t, 3, LevelOf("B.10.2.7"))
}

func TestParentCodeOf(t *testing.T) {
	assert.Equal(t, "A.1", ParentCodeOf("A.1.2"))
	assert.Equal(t, "A", ParentCodeOf("A.1"))
	assert.Equal(t, "", ParentCodeOf("A"))
	assert.Equal(t, "B.10.2", ParentCodeOf("B.10.2.7"))
}

func TestValidateGroupCode(t *testing.T) {
	t.Run("accepts single letters", func(t *testing.T) {
		assert.NoError(t, ValidateGroupCode("A"))
		assert.NoError(t, ValidateGroupCode("M"))
		assert.NoError(t, ValidateGroupCode("Z"))
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, code := range []string{"", "a", "AA", "1", "A.", "?"} {
			err := ValidateGroupCode(code)
			require.Error(t, err, "code %q", code)
			assert.ErrorIs(t, err, ErrMalformedCode)
		}
	})
}

func TestValidateCode(t *testing.T) {
	t.Run("accepts letter-dot-number codes", func(t *testing.T) {
		for _, code := range []string{"A.1", "A.10", "B.1.2", "Z.12.3.400"} {
			assert.NoError(t, ValidateCode(code), "code %q", code)
		}
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "A", "a.1", "AA.1", "A.", "A..1", "A.x", "A.1.", "A.1.b", "1.2"} {
			err := ValidateCode(code)
			require.Error(t, err, "code %q", code)
			assert.ErrorIs(t, err, ErrMalformedCode)
		}
	})
}

func TestNextSiblingCode(t *testing.T) {
	t.Run("first child", func(t *testing.T) {
		assert.Equal(t, "A.1.1", NextSiblingCode(nil, "A.1"))
	})

	t.Run("increments the highest sibling", func(t *testing.T) {
		assert.Equal(t, "A.3", NextSiblingCode([]string{"A.1", "A.2"}, "A"))
		assert.Equal(t, "A.10", NextSiblingCode([]string{"A.9"}, "A"))
	})

	t.Run("does not fill gaps", func(t *testing.T) {
		assert.Equal(t, "A.6", NextSiblingCode([]string{"A.1", "A.5"}, "A"))
	})

	t.Run("skips codes not directly under the prefix", func(t *testing.T) {
		assert.Equal(t, "A.1", NextSiblingCode([]string{"A.2.7", "B.4"}, "A"))
	})
}

func TestGenerateNewCode(t *testing.T) {
	standards := []*model.Standard{
		{Code: "A.1", Group: "Safety"},
		{Code: "A.2", Group: "Safety"},
		{Code: "A.1.1", ParentCode: "A.1", Group: "Safety"},
		{Code: "A.1.3", ParentCode: "A.1", Group: "Safety"},
		{Code: "B.1", Group: "Compliance"},
	}

	t.Run("numbers after the highest child of the parent", func(t *testing.T) {
		assert.Equal(t, "A.1.4", GenerateNewCode(standards, "A.1", ""))
	})

	t.Run("first child of a leaf", func(t *testing.T) {
		assert.Equal(t, "A.2.1", GenerateNewCode(standards, "A.2", ""))
	})

	t.Run("top level of a group counts only that group", func(t *testing.T) {
		assert.Equal(t, "A.3", GenerateNewCode(standards, "", "A"))
		assert.Equal(t, "B.2", GenerateNewCode(standards, "", "B"))
		assert.Equal(t, "C.1", GenerateNewCode(standards, "", "C"))
	})

	t.Run("empty without a parent or group", func(t *testing.T) {
		assert.Equal(t, "", GenerateNewCode(standards, "", ""))
	})
}

func TestNextGroupCode(t *testing.T) {
	t.Run("starts at A", func(t *testing.T) {
		code, err := NextGroupCode(nil)
		require.NoError(t, err)
		assert.Equal(t, "A", code)
	})

	t.Run("fills the lowest gap", func(t *testing.T) {
		groups := []*model.Group{{Code: "A"}, {Code: "C"}}
		code, err := NextGroupCode(groups)
		require.NoError(t, err)
		assert.Equal(t, "B", code)
	})

	t.Run("exhausts at 26 groups", func(t *testing.T) {
		groups := make([]*model.Group, 0, 26)
		for letter := 'A'; letter <= 'Z'; letter++ {
			groups = append(groups, &model.Group{Code: string(letter)})
		}
		_, err := NextGroupCode(groups)
		assert.ErrorIs(t, err, ErrGroupLettersExhausted)
	})
}

func TestCompareCodes(t *testing.T) {
	t.Run("numeric segment order", func(t *testing.T) {
		assert.Negative(t, CompareCodes("A.2", "A.10"))
		assert.Positive(t, CompareCodes("A.10", "A.2"))
	})

	t.Run("ancestors before descendants", func(t *testing.T) {
		assert.Negative(t, CompareCodes("A.1", "A.1.1"))
	})

	t.Run("group letters order lexically", func(t *testing.T) {
		assert.Negative(t, CompareCodes("A.5", "B.1"))
	})

	t.Run("equal codes", func(t *testing.T) {
		assert.Zero(t, CompareCodes("A.1.2", "A.1.2"))
	})
}

func TestSortCodes(t *testing.T) {
	codes := []string{"A.10", "A.2", "B.1", "A.1.1", "A.1", "A.2.3"}
	SortCodes(codes)
	assert.Equal(t, []string{"A.1", "A.1.1", "A.2", "A.2.3", "A.10", "B.1"}, codes)
}
