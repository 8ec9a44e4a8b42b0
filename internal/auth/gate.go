package auth

import "github.com/erazemk/anylist/internal/model"

// Authorize checks that user holds at least one of the required roles. An
// empty requirement admits any authenticated user.
func Authorize(user *model.User, required []model.Role) error {
	if len(required) == 0 {
		return nil
	}
	if user == nil {
		return model.ErrUnauthorized("not authenticated")
	}
	if user.Roles.Intersects(required) {
		return nil
	}
	return model.ErrForbidden("User %s need a valid role: %v", user.FullName, required)
}
