package policy

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/gate"
	"github.com/diewo77/billing-admin/internal/models"
)

// DBProfileResolver maps a user id to the static profile of its role.
// It implements gate.ProfileResolver[uint].
type DBProfileResolver struct {
	DB *gorm.DB
}

func NewDBProfileResolver(db *gorm.DB) *DBProfileResolver {
	return &DBProfileResolver{DB: db}
}

// Resolve looks up the user's role and returns the matching profile.
// Missing or disabled users (and disabled roles) resolve to no profile.
func (r *DBProfileResolver) Resolve(ctx context.Context, userID uint) (gate.Profile, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Preload("Role").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.State || !user.Role.State {
		return nil, nil
	}
	return ProfileForRole(user.Role.Name), nil
}
