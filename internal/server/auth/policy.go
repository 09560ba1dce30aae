package auth

import "github.com/jmoon-dev/resumehub/internal/server/models"

// Action enumerates the mutations subject to the ownership policy.
type Action int

const (
	ActionPatch Action = iota
	ActionDelete
)

// CanModify decides whether actor may apply action to a resource owned by
// ownerID. Owners may do anything to their own resources. The admin grade
// additionally bypasses the ownership check for patches, but not for
// deletes.
func CanModify(actor *models.User, ownerID int64, action Action) bool {
	if actor.ID == ownerID {
		return true
	}
	return action == ActionPatch && actor.Grade == models.GradeAdmin
}
