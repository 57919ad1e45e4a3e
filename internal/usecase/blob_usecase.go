package usecase

import (
	"context"
	"net/http"

	repo "storefront/internal/repository"
)

// 画像・3Dモデルのバイト列配信。中身は不透明データとして扱い、検証も変換もしない。
type BlobUsecase struct {
	products repo.ProductRepository
	images   repo.ProductImageRepository
}

// DI
func NewBlobUsecase(products repo.ProductRepository, images repo.ProductImageRepository) *BlobUsecase {
	return &BlobUsecase{products: products, images: images}
}

type BlobOutput struct {
	Data     []byte
	MimeType string
}

func (u *BlobUsecase) FetchImage(ctx context.Context, imageID int64) (BlobOutput, error) {
	if imageID <= 0 {
		return BlobOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	img, err := u.images.FindByID(ctx, imageID)
	if err == repo.ErrNotFound {
		return BlobOutput{}, NewHTTPError(http.StatusNotFound, "image not found")
	}
	if err != nil {
		return BlobOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(img.Data) == 0 {
		return BlobOutput{}, NewHTTPError(http.StatusNotFound, "image not found")
	}

	mime := "application/octet-stream"
	if img.MimeType != nil && *img.MimeType != "" {
		mime = *img.MimeType
	}
	return BlobOutput{Data: img.Data, MimeType: mime}, nil
}

func (u *BlobUsecase) FetchModel(ctx context.Context, productID int64) (BlobOutput, error) {
	if productID <= 0 {
		return BlobOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return BlobOutput{}, NewHTTPError(http.StatusNotFound, "model not found")
	}
	if err != nil {
		return BlobOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(p.ModelData) == 0 {
		return BlobOutput{}, NewHTTPError(http.StatusNotFound, "model not found")
	}

	mime := "application/octet-stream"
	if p.ModelMimeType != nil && *p.ModelMimeType != "" {
		mime = *p.ModelMimeType
	}
	return BlobOutput{Data: p.ModelData, MimeType: mime}, nil
}
