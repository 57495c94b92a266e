package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ListRoster returns the tenant's full member roster ordered by username.
// Inactive members are included; audience resolution decides who counts.
func (r *UserRepository) ListRoster(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).Model(&domain.User{})
	query = ApplyTenantFilter(ctx, query)
	err := query.Order("username ASC").Find(&users).Error
	return users, err
}
