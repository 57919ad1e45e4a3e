package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ProductSizeRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductSize, error)
	CreateBulk(ctx context.Context, productID int64, sizes []string) error
	DeleteByProductID(ctx context.Context, productID int64) error
}
