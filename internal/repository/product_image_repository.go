package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ProductImageRepository interface {
	FindByID(ctx context.Context, id int64) (model.ProductImage, error)
	//display_order昇順
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductImage, error)

	Create(ctx context.Context, img model.ProductImage) (model.ProductImage, error)
	UpdateDisplayOrder(ctx context.Context, id int64, order int) error
	Delete(ctx context.Context, id int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
}
