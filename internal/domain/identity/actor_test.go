package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	userID := uuid.New()
	tenantID := uuid.New()

	t.Run("valid actor", func(t *testing.T) {
		actor, err := NewActor(userID, tenantID, RoleSalesman)
		require.NoError(t, err)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, tenantID, actor.TenantID)
	})

	t.Run("missing tenant denied", func(t *testing.T) {
		_, err := NewActor(userID, uuid.Nil, RoleSalesman)
		assert.Error(t, err)
	})

	t.Run("missing user unauthorized", func(t *testing.T) {
		_, err := NewActor(uuid.Nil, tenantID, RoleSalesman)
		assert.Error(t, err)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := NewActor(userID, tenantID, Role("intern"))
		assert.Error(t, err)
	})
}

func TestRole_Permissions(t *testing.T) {
	tests := []struct {
		role          Role
		elevated      bool
		canReview     bool
		ownOrdersOnly bool
	}{
		{RoleAdmin, true, true, false},
		{RoleManager, true, true, false},
		{RoleAccountant, false, true, false},
		{RoleSalesman, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.elevated, tt.role.IsElevated())
			assert.Equal(t, tt.canReview, tt.role.CanReview())
			assert.Equal(t, tt.ownOrdersOnly, tt.role.SeesOwnOrdersOnly())
		})
	}
}
