package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceFlagSet(t *testing.T) {
	var f StringSliceFlag
	require.NoError(t, f.Set("a.com,b.com"))
	require.NoError(t, f.Set("c.com"))
	assert.Equal(t, StringSliceFlag{"a.com", "b.com", "c.com"}, f)
}

func TestStringSliceFlagSkipsBlanks(t *testing.T) {
	var f StringSliceFlag
	require.NoError(t, f.Set("a.com, ,b.com,"))
	assert.Equal(t, StringSliceFlag{"a.com", "b.com"}, f)
}

func TestStringSliceFlagString(t *testing.T) {
	f := StringSliceFlag{"a.com", "b.com"}
	assert.Equal(t, "a.com,b.com", f.String())
}
