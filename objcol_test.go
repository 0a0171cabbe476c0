package objcol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/objcol"
	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/typedcol"
	"github.com/arloliu/objcol/value"
)

func TestNewWiresDefaultDynamicColumnFactory(t *testing.T) {
	c, err := objcol.New(
		objcol.WithTypedPath("user", typedcol.NewStringColumn()),
		objcol.WithMaxDynamicPaths(4),
		objcol.WithMaxDynamicTypes(2),
	)
	require.NoError(t, err)

	err = c.Insert(column.Row{
		{Path: "user", Value: value.FromString("alice")},
		{Path: "city", Value: value.FromString("nyc")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, []string{"city"}, c.GetDynamicPaths())
}

func TestNewWithNoOptionsSucceeds(t *testing.T) {
	_, err := objcol.New()
	require.NoError(t, err)
}
