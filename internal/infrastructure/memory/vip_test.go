package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowListVIP(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	vip := NewAllowListVIP("buyer-1")

	ok, err := vip.IsEligible(ctx, "buyer-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = vip.IsEligible(ctx, "buyer-2")
	require.NoError(t, err)
	assert.False(t, ok)

	vip.Grant("buyer-2")
	ok, err = vip.IsEligible(ctx, "buyer-2")
	require.NoError(t, err)
	assert.True(t, ok)
}
