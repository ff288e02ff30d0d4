package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/strato-io/strato/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("fixed-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", token)

	t.Run("refresh is refused", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, manager.RefreshToken(context.Background()),
			auth.ErrStaticTokenCannotRefresh)
	})
}

func TestStaticTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("old")
	manager.SetToken("new", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}
