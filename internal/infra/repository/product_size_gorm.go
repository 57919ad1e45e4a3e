package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type ProductSizeGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductSizeGormRepository(db *gorm.DB) *ProductSizeGormRepository {
	return &ProductSizeGormRepository{db: db}
}

func (r *ProductSizeGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductSize, error) {
	var sizes []model.ProductSize
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&sizes).Error
	if err != nil {
		return []model.ProductSize{}, err
	}
	return sizes, nil
}

func (r *ProductSizeGormRepository) CreateBulk(ctx context.Context, productID int64, sizes []string) error {
	if len(sizes) == 0 {
		return nil
	}
	rows := make([]model.ProductSize, 0, len(sizes))
	for _, s := range sizes {
		rows = append(rows, model.ProductSize{ProductID: productID, Size: s})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ProductSizeGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductSize{}).Error
}
