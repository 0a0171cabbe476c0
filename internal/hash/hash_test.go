package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	assert.Equal(t, ID("abc"), ID("abc"))
	assert.NotEqual(t, ID("abc"), ID("abd"))
}

func TestNewDigest(t *testing.T) {
	d := NewDigest()
	_, err := d.Write([]byte("hello"))
	assert.NoError(t, err)
	sum1 := d.Sum64()

	d2 := NewDigest()
	_, _ = d2.Write([]byte("hello"))
	assert.Equal(t, sum1, d2.Sum64())
}
