package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/agencydesk/agencyflow/configs"
	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

func TestAccountSelect(t *testing.T) {
	sa := &fakeSocialAccountRepo{
		accounts: []*models.SocialAccount{
			{ID: 1, ClientID: 1, Platform: workflow.PlatformInstagram, AccountUsername: "brand.ig"},
			{ID: 2, ClientID: 1, Platform: workflow.PlatformTiktok, AccountUsername: "brand.tt"},
			{ID: 3, ClientID: 1, Platform: workflow.PlatformTiktok, AccountUsername: "brand.tt.backup"},
		},
	}
	s := NewAccountService(config.Config{}, sa)

	t.Run("single platform match auto-advances", func(t *testing.T) {
		sel, err := s.Select(context.Background(), 1, workflow.PlatformInstagram)
		require.NoError(t, err)
		require.Len(t, sel.Accounts, 1)
		assert.True(t, sel.AutoAdvance)
	})

	t.Run("multiple matches need a manual pick", func(t *testing.T) {
		sel, err := s.Select(context.Background(), 1, workflow.PlatformTiktok)
		require.NoError(t, err)
		require.Len(t, sel.Accounts, 2)
		assert.False(t, sel.AutoAdvance)
	})

	t.Run("no platform filter never auto-advances", func(t *testing.T) {
		sel, err := s.Select(context.Background(), 1, "")
		require.NoError(t, err)
		require.Len(t, sel.Accounts, 3)
		assert.False(t, sel.AutoAdvance)
	})

	t.Run("missing platform names the platform", func(t *testing.T) {
		_, err := s.Select(context.Background(), 1, workflow.PlatformYoutube)
		require.Error(t, err)
		assert.Contains(t, err.Error(), workflow.PlatformYoutube)
	})

	t.Run("client with no accounts", func(t *testing.T) {
		_, err := s.Select(context.Background(), 2, "")
		require.Error(t, err)
	})
}
