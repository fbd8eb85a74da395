package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/scenario"
)

func TestState_Value(t *testing.T) {
	s := scenario.NewState()
	s.Set("numberOfActiveProducts", 19)

	v, err := scenario.Value[int](s, "numberOfActiveProducts")
	require.NoError(t, err)
	assert.Equal(t, 19, v)
}

func TestState_Value_NotSet(t *testing.T) {
	s := scenario.NewState()

	_, err := scenario.Value[int](s, "idProduct")
	assert.ErrorIs(t, err, scenario.ErrKeyNotSet)
}

func TestState_Value_WrongType(t *testing.T) {
	s := scenario.NewState()
	s.Set("idProduct", "21")

	_, err := scenario.Value[int](s, "idProduct")
	assert.ErrorIs(t, err, scenario.ErrKeyType)
}

func TestState_Set_Shadows(t *testing.T) {
	s := scenario.NewState()
	s.Set("page", "bo")
	s.Set("page", "fo")

	v, ok := s.Get("page")
	require.True(t, ok)
	assert.Equal(t, "fo", v)
}

func TestState_Keys(t *testing.T) {
	s := scenario.NewState()
	s.Set("nthProduct", 3)
	s.Set("idProduct", 21)

	assert.Equal(t, []string{"idProduct", "nthProduct"}, s.Keys())
}
