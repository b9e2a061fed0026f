package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubIssueMetadata(t *testing.T) {
	t.Run("Should parse parent and order tags", func(t *testing.T) {
		body := "Implement the parser.\n\n<!-- leonidas-parent: #123 -->\n<!-- leonidas-order: 2/5 -->"
		metadata := ParseSubIssueMetadata(body)
		require.NotNil(t, metadata)
		assert.Equal(t, 123, metadata.ParentIssueNumber)
		assert.Equal(t, 2, metadata.Order)
		assert.Equal(t, 5, metadata.Total)
		assert.Nil(t, metadata.DependsOn)
	})
	t.Run("Should parse optional depends tag", func(t *testing.T) {
		body := "<!-- leonidas-parent: #123 -->\n<!-- leonidas-order: 3/5 -->\n<!-- leonidas-depends: #45 -->"
		metadata := ParseSubIssueMetadata(body)
		require.NotNil(t, metadata)
		require.NotNil(t, metadata.DependsOn)
		assert.Equal(t, 45, *metadata.DependsOn)
	})
	t.Run("Should return nil when parent tag is missing", func(t *testing.T) {
		body := "<!-- leonidas-order: 1/3 -->"
		assert.Nil(t, ParseSubIssueMetadata(body))
	})
	t.Run("Should return nil when order tag is missing", func(t *testing.T) {
		body := "<!-- leonidas-parent: #7 -->"
		assert.Nil(t, ParseSubIssueMetadata(body))
	})
	t.Run("Should return nil for a depends tag alone", func(t *testing.T) {
		body := "<!-- leonidas-depends: #45 -->"
		assert.Nil(t, ParseSubIssueMetadata(body))
	})
	t.Run("Should return nil for an empty body", func(t *testing.T) {
		assert.Nil(t, ParseSubIssueMetadata(""))
	})
	t.Run("Should tolerate flexible whitespace inside tags", func(t *testing.T) {
		body := "<!--leonidas-parent:#9-->\n<!--   leonidas-order:   4/4   -->"
		metadata := ParseSubIssueMetadata(body)
		require.NotNil(t, metadata)
		assert.Equal(t, 9, metadata.ParentIssueNumber)
		assert.Equal(t, 4, metadata.Order)
		assert.Equal(t, 4, metadata.Total)
	})
	t.Run("Should use the first occurrence of a duplicated tag", func(t *testing.T) {
		body := "<!-- leonidas-parent: #1 -->\n<!-- leonidas-order: 1/2 -->\n" +
			"<!-- leonidas-parent: #99 -->\n<!-- leonidas-order: 2/9 -->"
		metadata := ParseSubIssueMetadata(body)
		require.NotNil(t, metadata)
		assert.Equal(t, 1, metadata.ParentIssueNumber)
		assert.Equal(t, 1, metadata.Order)
		assert.Equal(t, 2, metadata.Total)
	})
	t.Run("Should not match tags with non-numeric values", func(t *testing.T) {
		body := "<!-- leonidas-parent: #abc -->\n<!-- leonidas-order: 1/3 -->"
		assert.Nil(t, ParseSubIssueMetadata(body))
	})
	t.Run("Should find tags anywhere in the body", func(t *testing.T) {
		body := "Intro text <!-- leonidas-order: 1/1 --> middle <!-- leonidas-parent: #42 --> trailing"
		metadata := ParseSubIssueMetadata(body)
		require.NotNil(t, metadata)
		assert.Equal(t, 42, metadata.ParentIssueNumber)
	})
}
