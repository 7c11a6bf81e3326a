package tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Altair788/AdHub/internal/shared/utils"
)

func TestDeref(t *testing.T) {
	require.Equal(t, "", utils.Deref[string](nil))
	require.Equal(t, int64(7), utils.Deref(utils.Ptr(int64(7))))
}

func TestPtrIf(t *testing.T) {
	require.Nil(t, utils.PtrIf("x", false))
	p := utils.PtrIf("x", true)
	require.NotNil(t, p)
	require.Equal(t, "x", *p)
}
