package moderation

import "github.com/brightwell-digital/cms-backend/pkg/enums"

// RequiresModeration reports whether mutations from this role must pass
// through review before they reach the live collections. Admins both
// mutate directly and review; everyone else proposes.
func RequiresModeration(role enums.UserRole) bool {
	return role != enums.RoleAdmin
}
