package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInputsDiff(t *testing.T) {
	styles := GetStyles()

	t.Run("renders no changes message", func(t *testing.T) {
		result := RenderInputsDiff(NewInputsDiff(), styles)
		assert.Equal(t, "No input changes detected.", result)
	})

	t.Run("renders new modules", func(t *testing.T) {
		d := NewInputsDiff()
		d.AddNew("account-1.vpc")
		result := RenderInputsDiff(d, styles)

		assert.Contains(t, result, "New:")
		assert.Contains(t, result, "+ ")
		assert.Contains(t, result, "account-1.vpc")
		assert.Contains(t, result, "1 new")
	})

	t.Run("renders changed modules with indented diff", func(t *testing.T) {
		d := NewInputsDiff()
		d.AddChanged("account-1.db", "vpc_id:\n  - vpc-old\n  + vpc-new")
		result := RenderInputsDiff(d, styles)

		assert.Contains(t, result, "Changed:")
		assert.Contains(t, result, "~ ")
		assert.Contains(t, result, "account-1.db")
		assert.Contains(t, result, "    vpc_id:")
		assert.Contains(t, result, "1 changed")
	})

	t.Run("unchanged modules only count in the summary", func(t *testing.T) {
		d := NewInputsDiff()
		d.AddNew("a")
		d.AddUnchanged("b")
		result := RenderInputsDiff(d, styles)

		assert.Contains(t, result, "1 new, 1 unchanged")
	})
}

func TestInputsDiffSummary(t *testing.T) {
	d := NewInputsDiff()
	assert.Equal(t, "No input changes", d.Summary())
	assert.True(t, d.IsEmpty())

	d.AddNew("a")
	d.AddChanged("b", "diff")
	d.AddUnchanged("c")
	assert.Equal(t, "1 new, 1 changed, 1 unchanged", d.Summary())
	assert.False(t, d.IsEmpty())
}

func TestCompareYAML(t *testing.T) {
	t.Run("identical documents produce no diff", func(t *testing.T) {
		doc := []byte("vpc_id: vpc-123\ncidr: 10.0.0.0/16\n")
		result, err := CompareYAML("previous", doc, "current", doc, false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("changed value produces a report", func(t *testing.T) {
		previous := []byte("vpc_id: vpc-old\n")
		current := []byte("vpc_id: vpc-new\n")
		result, err := CompareYAML("previous", previous, "current", current, false)
		require.NoError(t, err)

		assert.Contains(t, result, "vpc_id")
		assert.Contains(t, result, "vpc-old")
		assert.Contains(t, result, "vpc-new")
	})

	t.Run("both empty produce no diff", func(t *testing.T) {
		result, err := CompareYAML("previous", nil, "current", nil, false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\nb", "  "))
}
