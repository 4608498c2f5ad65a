package authz

import (
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_ProductCreate(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.Role
		allowed bool
	}{
		{"user denied", entity.RoleUser, false},
		{"seller allowed", entity.RoleSeller, true},
		{"admin allowed", entity.RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, ResourceProduct, ActionCreate)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrForbidden)
			}
		})
	}
}

func TestAuthorize_AdminOnlyListings(t *testing.T) {
	for _, resource := range []Resource{ResourceProduct, ResourceUser, ResourceOrder} {
		assert.NoError(t, Authorize(entity.RoleAdmin, resource, ActionListAll))
		assert.Error(t, Authorize(entity.RoleSeller, resource, ActionListAll))
		assert.Error(t, Authorize(entity.RoleUser, resource, ActionListAll))
	}
}

func TestAuthorize_UnknownResourceDenied(t *testing.T) {
	err := Authorize(entity.RoleAdmin, Resource("warehouse"), ActionCreate)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAuthorize_UnknownActionDenied(t *testing.T) {
	err := Authorize(entity.RoleAdmin, ResourceReview, ActionDelete)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCanActOn(t *testing.T) {
	assert.True(t, CanActOn("a", "a", entity.RoleSeller), "owner may act")
	assert.False(t, CanActOn("a", "b", entity.RoleSeller), "non-owner seller may not act")
	assert.True(t, CanActOn("a", "b", entity.RoleAdmin), "admin may act on any resource")
}
