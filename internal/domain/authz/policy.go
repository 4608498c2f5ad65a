// Package authz centralizes the role policy table. Call sites never compare
// role strings inline; they ask Authorize whether a (resource, action) pair
// is permitted for a role.
package authz

import (
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
)

// Resource names a protected data set.
type Resource string

// Action names an operation on a resource.
type Action string

const (
	ResourceProduct Resource = "product"
	ResourceUser    Resource = "user"
	ResourceOrder   Resource = "order"
	ResourceReview  Resource = "review"
)

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionListOwn      Action = "list_own"
	ActionListAll      Action = "list_all"
	ActionUpdateStatus Action = "update_status"
)

// policy is the single allow table: resource x action -> permitted roles.
// Anything absent is denied. Ownership narrowing (a seller touching only
// their own products) is applied by the services after the existence check,
// so NotFound always takes precedence over Forbidden.
var policy = map[Resource]map[Action]entity.Roles{
	ResourceProduct: {
		ActionCreate:  {entity.RoleSeller, entity.RoleAdmin},
		ActionUpdate:  {entity.RoleSeller, entity.RoleAdmin},
		ActionDelete:  {entity.RoleSeller, entity.RoleAdmin},
		ActionListOwn: {entity.RoleSeller, entity.RoleAdmin},
		ActionListAll: {entity.RoleAdmin},
	},
	ResourceUser: {
		ActionUpdate:  {entity.RoleAdmin},
		ActionDelete:  {entity.RoleAdmin},
		ActionListAll: {entity.RoleAdmin},
	},
	ResourceOrder: {
		ActionListOwn:      {entity.RoleUser, entity.RoleSeller, entity.RoleAdmin},
		ActionListAll:      {entity.RoleAdmin},
		ActionUpdateStatus: {entity.RoleAdmin},
	},
	ResourceReview: {
		ActionCreate: {entity.RoleUser, entity.RoleSeller, entity.RoleAdmin},
	},
}

// Authorize returns nil when the role may perform the action on the
// resource, ErrForbidden otherwise. It is a pure function with no side
// effects.
func Authorize(role entity.Role, resource Resource, action Action) error {
	actions, ok := policy[resource]
	if !ok {
		return domainerrors.ErrForbidden
	}

	roles, ok := actions[action]
	if !ok || !roles.Contains(role) {
		return domainerrors.ErrForbidden
	}

	return nil
}

// CanActOn reports whether the caller may mutate a resource owned by
// ownerID: admins may touch any resource, everyone else only their own.
func CanActOn(claimsUserID, ownerID string, role entity.Role) bool {
	if role == entity.RoleAdmin {
		return true
	}

	return claimsUserID == ownerID
}
