package auth

import "thaitravel/internal/model"

// HasAnyRole reports whether userRoles and allowed share at least one name.
func HasAnyRole(userRoles []string, allowed ...string) bool {
	for _, want := range allowed {
		for _, have := range userRoles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func IsActive(user *model.User) bool {
	return user != nil && user.Status == model.UserStatusActive
}
