package basic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalValueRoundTrip(t *testing.T) {
	v, err := NewDecimalValue("1234.5600")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", v.ToString())
	assert.Equal(t, ValueTypeDecimal, v.Type())
}

func TestDecimalValueCompareExact(t *testing.T) {
	a, err := NewDecimalValue("10.10")
	require.NoError(t, err)
	b, err := NewDecimalValue("10.1")
	require.NoError(t, err)

	assert.Equal(t, 0, a.Compare(b))
	assert.False(t, a.IsNull())
}

func TestDecimalValueOrdering(t *testing.T) {
	small, err := NewDecimalValue("1.5")
	require.NoError(t, err)
	big, err := NewDecimalValue("1.50001")
	require.NoError(t, err)

	assert.Equal(t, -1, small.Compare(big))
	assert.Equal(t, 1, big.Compare(small))
}

func TestDecimalValueFromInt(t *testing.T) {
	v := NewDecimalValueFromInt(42)
	assert.Equal(t, int64(42), v.Int())
	assert.True(t, v.Bool())
}

func TestDecimalValueRejectsGarbage(t *testing.T) {
	_, err := NewDecimalValue("not-a-number")
	assert.Error(t, err)
}
