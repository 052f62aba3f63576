// Package authz holds the mutation rules for forum content. Edits are
// allowed for the resource owner or an admin; deletes are admin-only
// across every resource type. Handlers surface violations as the same
// generic rejection used for missing resources.
package authz

import "github.com/emilythestrangee/forum-backend/internal/models"

// CanEdit reports whether actor may modify a resource owned by ownerID.
func CanEdit(actor *models.User, ownerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin
}

// CanDelete reports whether actor may delete a resource. Authors cannot
// delete their own content; only admins can.
func CanDelete(actor *models.User) bool {
	return actor != nil && actor.IsAdmin
}
