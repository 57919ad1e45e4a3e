package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CollectionUsecase struct {
	collections repo.CollectionRepository
	products    repo.ProductRepository
}

// DI
func NewCollectionUsecase(collections repo.CollectionRepository, products repo.ProductRepository) *CollectionUsecase {
	return &CollectionUsecase{collections: collections, products: products}
}

type CollectionInput struct {
	Name        string
	Description string
	ReleaseDate time.Time
}

func (u *CollectionUsecase) ListCollections(ctx context.Context) ([]model.Collection, error) {
	cs, err := u.collections.ListAll(ctx)
	if err != nil {
		return []model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cs, nil
}

func (u *CollectionUsecase) CreateCollection(ctx context.Context, in CollectionInput) (model.Collection, error) {
	if err := validateCollectionInput(in); err != nil {
		return model.Collection{}, err
	}

	c, err := u.collections.Create(ctx, model.Collection{
		Name:        in.Name,
		Description: in.Description,
		ReleaseDate: in.ReleaseDate,
	})
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CollectionUsecase) UpdateCollection(ctx context.Context, collectionID int64, in CollectionInput) (model.Collection, error) {
	if collectionID <= 0 {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateCollectionInput(in); err != nil {
		return model.Collection{}, err
	}

	err := u.collections.Update(ctx, model.Collection{
		ID:          collectionID,
		Name:        in.Name,
		Description: in.Description,
		ReleaseDate: in.ReleaseDate,
	})
	if err == repo.ErrNotFound {
		return model.Collection{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.collections.FindByID(ctx, collectionID)
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// DeleteCollectionは商品が紐付いている間は消せない（409）。
func (u *CollectionUsecase) DeleteCollection(ctx context.Context, collectionID int64) error {
	if collectionID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	n, err := u.products.CountByCollectionID(ctx, collectionID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return NewHTTPError(http.StatusConflict, "collection has products")
	}

	err = u.collections.Delete(ctx, collectionID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateCollectionInput(in CollectionInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if in.ReleaseDate.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "release_date is required")
	}
	return nil
}
