package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextResolver(t *testing.T) {
	ctx := context.Background()

	_, err := ContextResolver{}.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	id, err := ContextResolver{Default: "local"}.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "local", id)

	id, err = ContextResolver{Default: "local"}.CurrentUser(WithUser(ctx, "alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", id)

	_, err = ContextResolver{}.CurrentUser(WithUser(ctx, "  "))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
