package service

import (
	"errors"

	"gorm.io/gorm"

	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
)

// privilegedScanRoles may complete any claim at a facility.
var privilegedScanRoles = []auth.Role{auth.RoleAdmin, auth.RoleFacility, auth.RolePartner}

// requireActiveUser verifies the actor maps to a known, active account.
// Every mutating operation runs this before touching lifecycle state.
func requireActiveUser(tx *gorm.DB, actor *auth.ActorContext) (*model.User, error) {
	if actor == nil || actor.SubjectID == 0 {
		return nil, errno.ErrTokenInvalid
	}

	var user model.User
	if err := tx.First(&user, "id = ?", actor.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrUserNotFound
		}
		return nil, err
	}
	if user.Status != model.UserStatusActive {
		return nil, errno.ErrUserInactive
	}
	return &user, nil
}
