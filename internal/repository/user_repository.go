package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}
