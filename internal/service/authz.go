package service

import "github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"

// Pure authorization guards shared by the engines. No I/O.

// RequireRole passes when the principal holds one of the allowed roles.
func RequireRole(p domain.Principal, roles ...domain.UserRole) error {
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return domain.Forbidden("insufficient role")
}

// RequireOwnerOrRole passes when the principal owns the resource or holds
// one of the allowed roles.
func RequireOwnerOrRole(p domain.Principal, ownerID int64, roles ...domain.UserRole) error {
	if p.ID == ownerID {
		return nil
	}
	if err := RequireRole(p, roles...); err != nil {
		return domain.Forbidden("not the owner and insufficient role")
	}
	return nil
}
