package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, SplitList(" a, b ,c"))
	assert.Equal(t, []string{"a", "", "b"}, SplitList("a,,b"))
	assert.Equal(t, []string{""}, SplitList(""))
}

func TestParseIntList(t *testing.T) {
	t.Parallel()

	nums, err := ParseIntList("1, 2,3")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, nums)

	_, err = ParseIntList("1,2,abc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "problem parsing value 'abc'")
}
