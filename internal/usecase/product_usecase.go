package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	tx          repo.TransactionManager
	products    repo.ProductRepository
	images      repo.ProductImageRepository
	sizes       repo.ProductSizeRepository
	collections repo.CollectionRepository
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	images repo.ProductImageRepository,
	sizes repo.ProductSizeRepository,
	collections repo.CollectionRepository,
) *ProductUsecase {
	return &ProductUsecase{
		tx:          tx,
		products:    products,
		images:      images,
		sizes:       sizes,
		collections: collections,
	}
}

type ProductImageOutput struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type ProductOutput struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Composition    string               `json:"composition"`
	Price          decimal.Decimal      `json:"price"`
	CollectionID   int64                `json:"collection_id"`
	ModelURL       *string              `json:"model_url"`
	GlbAttribution *string              `json:"glb_attribution"`
	GlbLink        *string              `json:"glb_link"`
	IsActive       bool                 `json:"is_active"`
	Images         []ProductImageOutput `json:"images"`
	Sizes          []string             `json:"sizes"`
}

// バイナリ入力（画像・3Dモデル）
type BlobInput struct {
	Data     []byte
	MimeType string
}

type ProductInput struct {
	Name           string
	Description    string
	Composition    string
	Price          decimal.Decimal
	CollectionID   int64
	ModelURL       string
	GlbAttribution string
	GlbLink        string
	IsActive       bool
	Sizes          []string

	Image *BlobInput
	Model *BlobInput
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.products.ListAll(ctx)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		out, err := u.shapeProduct(ctx, p)
		if err != nil {
			return []ProductOutput{}, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.shapeProduct(ctx, p)
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (ProductOutput, error) {
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	//コレクションの存在チェック
	if _, err := u.collections.FindByID(ctx, in.CollectionID); err != nil {
		if err == repo.ErrNotFound {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "unknown collection")
		}
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var created model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p := model.Product{
			Name:         in.Name,
			Description:  in.Description,
			Composition:  in.Composition,
			Price:        in.Price,
			CollectionID: in.CollectionID,
			IsActive:     in.IsActive,
		}
		if in.ModelURL != "" {
			p.ModelURL = &in.ModelURL
		}
		if in.GlbAttribution != "" {
			p.GlbAttribution = &in.GlbAttribution
		}
		if in.GlbLink != "" {
			p.GlbLink = &in.GlbLink
		}
		if in.Model != nil {
			p.ModelData = in.Model.Data
			p.ModelMimeType = &in.Model.MimeType
		}

		p, err := r.Products().Create(ctx, p)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Image != nil {
			img := model.ProductImage{
				ProductID: p.ID,
				Data:      in.Image.Data,
				MimeType:  &in.Image.MimeType,
			}
			if _, err := r.Images().Create(ctx, img); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Sizes().CreateBulk(ctx, p.ID, in.Sizes); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created = p
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}

	return u.shapeProduct(ctx, created)
}

// UpdateProductはコア項目・モデルblob差し替え・画像1枚追加・サイズ一覧置き換えを
// 1トランザクションで行う。途中で失敗したら全部ロールバック。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if _, err := r.Collections().FindByID(ctx, in.CollectionID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "unknown collection")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p.Name = in.Name
		p.Description = in.Description
		p.Composition = in.Composition
		p.Price = in.Price
		p.CollectionID = in.CollectionID
		p.IsActive = in.IsActive
		p.ModelURL = nilIfEmpty(in.ModelURL)
		p.GlbAttribution = nilIfEmpty(in.GlbAttribution)
		p.GlbLink = nilIfEmpty(in.GlbLink)

		if err := r.Products().Update(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//モデルblobは渡されたときだけ差し替え
		if in.Model != nil {
			if err := r.Products().SetModelBlob(ctx, productID, in.Model.Data, in.Model.MimeType); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//画像は渡されたときだけ末尾に1枚追加
		if in.Image != nil {
			existing, err := r.Images().ListByProductID(ctx, productID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			img := model.ProductImage{
				ProductID:    productID,
				Data:         in.Image.Data,
				MimeType:     &in.Image.MimeType,
				DisplayOrder: len(existing),
			}
			if _, err := r.Images().Create(ctx, img); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//サイズ一覧は丸ごと置き換え
		if err := r.Sizes().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Sizes().CreateBulk(ctx, productID, in.Sizes); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}

	return u.GetProduct(ctx, productID)
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Images().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Sizes().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Products().Delete(ctx, productID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// ReorderImagesは指定順に表示順を振り直す。
// 他商品の画像IDが混ざっていたら何も変更しない。
func (u *ProductUsecase) ReorderImages(ctx context.Context, productID int64, imageIDs []int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if len(imageIDs) == 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid data")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.Images().ListByProductID(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		owned := make(map[int64]bool, len(existing))
		for _, img := range existing {
			owned[img.ID] = true
		}

		//全IDがこの商品のものかを先に確認
		for _, id := range imageIDs {
			if !owned[id] {
				return NewHTTPError(http.StatusBadRequest, "image does not belong to product")
			}
		}

		for i, id := range imageIDs {
			if err := r.Images().UpdateDisplayOrder(ctx, id, i); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
}

func (u *ProductUsecase) DeleteImage(ctx context.Context, imageID int64) error {
	if imageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid image id")
	}

	err := u.images.Delete(ctx, imageID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// DeleteModelはモデルblobと関連メタデータをクリアする。
func (u *ProductUsecase) DeleteModel(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.products.ClearModel(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 一覧・詳細の返却形に整える。blob本体は返さず、配信URLに置き換える。
func (u *ProductUsecase) shapeProduct(ctx context.Context, p model.Product) (ProductOutput, error) {
	images, err := u.images.ListByProductID(ctx, p.ID)
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	sizes, err := u.sizes.ListByProductID(ctx, p.ID)
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	imgOuts := make([]ProductImageOutput, 0, len(images))
	for _, img := range images {
		url := fmt.Sprintf("/images/%d", img.ID)
		if img.URL != nil && *img.URL != "" {
			url = *img.URL
		}
		imgOuts = append(imgOuts, ProductImageOutput{ID: img.ID, URL: url})
	}

	sizeOuts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		sizeOuts = append(sizeOuts, s.Size)
	}

	//blobがあれば内部配信URLを優先する
	modelURL := p.ModelURL
	if p.ModelMimeType != nil {
		v := fmt.Sprintf("/models/%d", p.ID)
		modelURL = &v
	}

	return ProductOutput{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Composition:    p.Composition,
		Price:          p.Price,
		CollectionID:   p.CollectionID,
		ModelURL:       modelURL,
		GlbAttribution: p.GlbAttribution,
		GlbLink:        p.GlbLink,
		IsActive:       p.IsActive,
		Images:         imgOuts,
		Sizes:          sizeOuts,
	}, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if strings.TrimSpace(in.Composition) == "" {
		return NewHTTPError(http.StatusBadRequest, "composition is required")
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if in.CollectionID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "collection_id is required")
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
