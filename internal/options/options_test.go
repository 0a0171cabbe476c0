package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type config struct {
	n int
}

func TestApply(t *testing.T) {
	c := &config{}
	err := Apply(c,
		New(func(c *config) error { c.n = 1; return nil }),
		NoError(func(c *config) { c.n += 10 }),
	)
	require.NoError(t, err)
	assert.Equal(t, 11, c.n)
}

func TestApplyStopsOnError(t *testing.T) {
	c := &config{}
	sentinel := errors.New("boom")
	err := Apply(c,
		New(func(c *config) error { c.n = 1; return sentinel }),
		NoError(func(c *config) { c.n = 999 }),
	)
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, c.n)
}
