package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_KeysAndIndexes(t *testing.T) {
	segs, err := ParsePath("vpc.subnets[0].id")
	require.NoError(t, err)
	assert.Equal(t, []Segment{
		keySegment("vpc"),
		keySegment("subnets"),
		indexSegment(0),
		keySegment("id"),
	}, segs)
}

func TestParsePath_ChainedIndexes(t *testing.T) {
	segs, err := ParsePath("m.grid[1][2]")
	require.NoError(t, err)
	assert.Equal(t, []Segment{
		keySegment("m"),
		keySegment("grid"),
		indexSegment(1),
		indexSegment(2),
	}, segs)
}

func TestParsePath_Errors(t *testing.T) {
	for _, path := range []string{
		"",
		"vpc..id",
		"vpc.subnets[",
		"vpc.subnets[x]",
		"vpc.subnets[-1]",
		"[0].id",
	} {
		_, err := ParsePath(path)
		assert.Error(t, err, "path %q", path)
	}
}

func TestTraverse_NestedValues(t *testing.T) {
	root := map[string]any{
		"subnets": []any{"subnet-111", "subnet-222"},
		"tags":    map[string]any{"env": "prod"},
	}

	v, ok := Traverse(root, []Segment{keySegment("subnets"), indexSegment(1)})
	require.True(t, ok)
	assert.Equal(t, "subnet-222", v)

	v, ok = Traverse(root, []Segment{keySegment("tags"), keySegment("env")})
	require.True(t, ok)
	assert.Equal(t, "prod", v)
}

func TestTraverse_Misses(t *testing.T) {
	root := map[string]any{"subnets": []any{"subnet-111"}}

	_, ok := Traverse(root, []Segment{keySegment("nope")})
	assert.False(t, ok)

	_, ok = Traverse(root, []Segment{keySegment("subnets"), indexSegment(5)})
	assert.False(t, ok)

	// Indexing into a scalar misses rather than panicking.
	_, ok = Traverse(root, []Segment{keySegment("subnets"), indexSegment(0), keySegment("x")})
	assert.False(t, ok)
}

func TestTraverse_UnwrapsTerraformValueWrapper(t *testing.T) {
	// Shape of `terraform output -json`.
	root := map[string]any{
		"public_subnets": map[string]any{
			"value":     []any{"subnet-111", "subnet-222"},
			"type":      []any{"list", "string"},
			"sensitive": false,
		},
	}

	v, ok := Traverse(root, []Segment{keySegment("public_subnets"), indexSegment(0)})
	require.True(t, ok)
	assert.Equal(t, "subnet-111", v)
}

func TestParse_ReferenceShapes(t *testing.T) {
	expr, ok := Parse(map[string]any{"from": "vpc.id"})
	require.True(t, ok)
	assert.Equal(t, "vpc.id", expr.From)
	assert.False(t, expr.HasDefault)

	expr, ok = Parse(map[string]any{"from": "vpc.id", "default": "none"})
	require.True(t, ok)
	assert.True(t, expr.HasDefault)
	assert.Equal(t, "none", expr.Default)

	// Legacy key.
	expr, ok = Parse(map[string]any{"path": "tenant.id"})
	require.True(t, ok)
	assert.Equal(t, "tenant.id", expr.From)

	// Explicit null default still counts as a default.
	expr, ok = Parse(map[string]any{"from": "vpc.id", "default": nil})
	require.True(t, ok)
	assert.True(t, expr.HasDefault)
	assert.Nil(t, expr.Default)
}

func TestParse_Literals(t *testing.T) {
	for _, v := range []any{
		"plain",
		42,
		[]any{"a"},
		map[string]any{"cidr": "10.0.0.0/16"},
		map[string]any{"from": 12},
		nil,
	} {
		_, ok := Parse(v)
		assert.False(t, ok, "value %v", v)
	}
}
