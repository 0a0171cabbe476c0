package strcol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndAt(t *testing.T) {
	c := New()
	c.Append([]byte("a"))
	c.Append([]byte("bb"))
	c.Append([]byte("ccc"))

	require.Equal(t, 3, c.Len())
	assert.Equal(t, "a", string(c.At(0)))
	assert.Equal(t, "bb", string(c.At(1)))
	assert.Equal(t, "ccc", string(c.At(2)))
}

func TestPopBack(t *testing.T) {
	c := New()
	c.Append([]byte("a"))
	c.Append([]byte("bb"))
	c.Append([]byte("ccc"))
	c.PopBack(2)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "a", string(c.At(0)))
}

func TestFilterPermuteIndexReplicateScatter(t *testing.T) {
	c := New()
	for _, s := range []string{"a", "b", "c"} {
		c.Append([]byte(s))
	}

	f := c.Filter([]bool{true, false, true})
	assert.Equal(t, []string{"a", "c"}, collect(f))

	p := c.Permute([]int{2, 0, 1}, 0)
	assert.Equal(t, []string{"c", "a", "b"}, collect(p))

	idx := c.Index([]int{1, 1}, 0)
	assert.Equal(t, []string{"b", "b"}, collect(idx))

	r := c.Replicate([]int{2, 0, 1})
	assert.Equal(t, []string{"a", "a", "c"}, collect(r))

	shards := c.Scatter(2, []int{0, 1, 0})
	assert.Equal(t, []string{"a", "c"}, collect(shards[0]))
	assert.Equal(t, []string{"b"}, collect(shards[1]))
}

func TestLowerBound(t *testing.T) {
	c := New()
	for _, s := range []string{"a", "c", "e", "g"} {
		c.Append([]byte(s))
	}

	assert.Equal(t, 0, LowerBound(c, 0, c.Len(), []byte("a")))
	assert.Equal(t, 1, LowerBound(c, 0, c.Len(), []byte("b")))
	assert.Equal(t, 2, LowerBound(c, 0, c.Len(), []byte("d")))
	assert.Equal(t, 4, LowerBound(c, 0, c.Len(), []byte("z")))
}

func collect(c *Column) []string {
	out := make([]string, c.Len())
	for i := 0; i < c.Len(); i++ {
		out[i] = string(c.At(i))
	}

	return out
}
