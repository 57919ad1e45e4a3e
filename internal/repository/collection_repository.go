package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CollectionRepository interface {
	//リリース日降順
	ListAll(ctx context.Context) ([]model.Collection, error)
	FindByID(ctx context.Context, id int64) (model.Collection, error)

	Create(ctx context.Context, c model.Collection) (model.Collection, error)
	Update(ctx context.Context, c model.Collection) error
	Delete(ctx context.Context, id int64) error
}
