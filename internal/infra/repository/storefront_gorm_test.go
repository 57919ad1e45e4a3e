package repository_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}

	//インメモリDBは接続ごとに別物になるので1本に固定する
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Collection{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductSize{},
		&model.Order{},
		&model.OrderItem{},
	)
	if err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return db
}

func newProductUsecase(db *gorm.DB) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(
		infraRepo.NewTxManagerGorm(db),
		infraRepo.NewProductGormRepository(db),
		infraRepo.NewProductImageGormRepository(db),
		infraRepo.NewProductSizeGormRepository(db),
		infraRepo.NewCollectionGormRepository(db),
	)
}

func seedProduct(t *testing.T, db *gorm.DB, sizes []string) model.Product {
	t.Helper()
	ctx := context.Background()

	collections := infraRepo.NewCollectionGormRepository(db)
	products := infraRepo.NewProductGormRepository(db)
	sizeRepo := infraRepo.NewProductSizeGormRepository(db)

	col, err := collections.Create(ctx, model.Collection{
		Name:        "Summer 2025",
		Description: "The hottest looks for the summer.",
		ReleaseDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("collection seed failed: %v", err)
	}

	p, err := products.Create(ctx, model.Product{
		Name:         "Summer T-Shirt",
		Description:  "A cool t-shirt for hot days.",
		Composition:  "100% Cotton",
		Price:        decimal.RequireFromString("29.99"),
		CollectionID: col.ID,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("product seed failed: %v", err)
	}

	if err := sizeRepo.CreateBulk(ctx, p.ID, sizes); err != nil {
		t.Fatalf("size seed failed: %v", err)
	}

	return p
}

func seedBlobImage(t *testing.T, db *gorm.DB, productID int64, order int, data []byte) model.ProductImage {
	t.Helper()
	mime := "image/jpeg"
	img, err := infraRepo.NewProductImageGormRepository(db).Create(context.Background(), model.ProductImage{
		ProductID:    productID,
		Data:         data,
		MimeType:     &mime,
		DisplayOrder: order,
	})
	if err != nil {
		t.Fatalf("image seed failed: %v", err)
	}
	return img
}

// =====================
// サイズ置き換え
// =====================

func TestProductUpdate_ReplacesSizesWholesale(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, []string{"S", "M"})

	var oldIDs []int64
	db.Model(&model.ProductSize{}).Where("product_id = ?", p.ID).Pluck("id", &oldIDs)
	assert.Len(t, oldIDs, 2)

	uc := newProductUsecase(db)
	out, err := uc.UpdateProduct(ctx, p.ID, usecase.ProductInput{
		Name:         p.Name,
		Description:  p.Description,
		Composition:  p.Composition,
		Price:        p.Price,
		CollectionID: p.CollectionID,
		IsActive:     true,
		Sizes:        []string{"M", "L", "XL"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"M", "L", "XL"}, out.Sizes)

	//旧サイズ行は残っていない
	var count int64
	db.Model(&model.ProductSize{}).Where("id IN ?", oldIDs).Count(&count)
	assert.Equal(t, int64(0), count)

	var total int64
	db.Model(&model.ProductSize{}).Where("product_id = ?", p.ID).Count(&total)
	assert.Equal(t, int64(3), total)
}

func TestProductUpdate_UnknownCollectionRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, []string{"S", "M"})

	uc := newProductUsecase(db)
	_, err := uc.UpdateProduct(ctx, p.ID, usecase.ProductInput{
		Name:         "Changed",
		Description:  p.Description,
		Composition:  p.Composition,
		Price:        p.Price,
		CollectionID: 9999,
		IsActive:     true,
		Sizes:        []string{"XL"},
	})
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}

	//名前もサイズも元のまま
	var fresh model.Product
	assert.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, "Summer T-Shirt", fresh.Name)

	var total int64
	db.Model(&model.ProductSize{}).Where("product_id = ?", p.ID).Count(&total)
	assert.Equal(t, int64(2), total)
}

// =====================
// 画像の並び替え
// =====================

func TestReorderImages_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)

	a := seedBlobImage(t, db, p.ID, 0, []byte("a"))
	b := seedBlobImage(t, db, p.ID, 1, []byte("b"))
	c := seedBlobImage(t, db, p.ID, 2, []byte("c"))

	uc := newProductUsecase(db)
	err := uc.ReorderImages(ctx, p.ID, []int64{c.ID, a.ID, b.ID})
	assert.NoError(t, err)

	imgs, err := infraRepo.NewProductImageGormRepository(db).ListByProductID(ctx, p.ID)
	assert.NoError(t, err)
	if assert.Len(t, imgs, 3) {
		assert.Equal(t, []int64{c.ID, a.ID, b.ID}, []int64{imgs[0].ID, imgs[1].ID, imgs[2].ID})
	}
}

func TestReorderImages_RejectsForeignImage(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)
	a := seedBlobImage(t, db, p.ID, 0, []byte("a"))
	b := seedBlobImage(t, db, p.ID, 1, []byte("b"))

	//別商品の画像
	products := infraRepo.NewProductGormRepository(db)
	other, err := products.Create(ctx, model.Product{
		Name: "Other", Description: "d", Composition: "c",
		Price: decimal.RequireFromString("9.99"), CollectionID: p.CollectionID, IsActive: true,
	})
	assert.NoError(t, err)
	foreign := seedBlobImage(t, db, other.ID, 0, []byte("x"))

	uc := newProductUsecase(db)
	err = uc.ReorderImages(ctx, p.ID, []int64{foreign.ID, a.ID, b.ID})
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}

	//並びは変わっていない
	imgs, err := infraRepo.NewProductImageGormRepository(db).ListByProductID(ctx, p.ID)
	assert.NoError(t, err)
	if assert.Len(t, imgs, 2) {
		assert.Equal(t, []int64{a.ID, b.ID}, []int64{imgs[0].ID, imgs[1].ID})
	}
}

// =====================
// コレクション削除ガード
// =====================

func TestCollectionDelete_BlockedWhileProductsExist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, []string{"S"})

	collectionUC := usecase.NewCollectionUsecase(
		infraRepo.NewCollectionGormRepository(db),
		infraRepo.NewProductGormRepository(db),
	)

	//商品が残っている間は409
	err := collectionUC.DeleteCollection(ctx, p.CollectionID)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusConflict, he.Status)
	}
	var count int64
	db.Model(&model.Collection{}).Where("id = ?", p.CollectionID).Count(&count)
	assert.Equal(t, int64(1), count)

	//商品を消せば削除できる
	assert.NoError(t, newProductUsecase(db).DeleteProduct(ctx, p.ID))
	assert.NoError(t, collectionUC.DeleteCollection(ctx, p.CollectionID))

	db.Model(&model.Collection{}).Where("id = ?", p.CollectionID).Count(&count)
	assert.Equal(t, int64(0), count)
}

// =====================
// 画像・モデルの削除
// =====================

func TestDeleteImage_RemovesRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)
	a := seedBlobImage(t, db, p.ID, 0, []byte("a"))
	b := seedBlobImage(t, db, p.ID, 1, []byte("b"))

	uc := newProductUsecase(db)
	assert.NoError(t, uc.DeleteImage(ctx, a.ID))

	imgs, err := infraRepo.NewProductImageGormRepository(db).ListByProductID(ctx, p.ID)
	assert.NoError(t, err)
	if assert.Len(t, imgs, 1) {
		assert.Equal(t, b.ID, imgs[0].ID)
	}

	//2回目は404
	err = uc.DeleteImage(ctx, a.ID)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}
}

func TestDeleteModel_ClearsBlobAndMetadata(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)

	products := infraRepo.NewProductGormRepository(db)
	assert.NoError(t, products.SetModelBlob(ctx, p.ID, []byte("glb-bytes"), "model/gltf-binary"))
	attribution := "Model by Example Artist"
	assert.NoError(t, db.Model(&model.Product{}).Where("id = ?", p.ID).
		Update("glb_attribution", attribution).Error)

	uc := newProductUsecase(db)
	assert.NoError(t, uc.DeleteModel(ctx, p.ID))

	//blobもメタデータも残らない
	var fresh model.Product
	assert.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Nil(t, fresh.ModelData)
	assert.Nil(t, fresh.ModelMimeType)
	assert.Nil(t, fresh.ModelURL)
	assert.Nil(t, fresh.GlbAttribution)

	//詳細からもモデルURLが消える
	out, err := uc.GetProduct(ctx, p.ID)
	assert.NoError(t, err)
	assert.Nil(t, out.ModelURL)

	//存在しない商品は404
	err = uc.DeleteModel(ctx, 9999)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}
}

// =====================
// チェックアウトの原子性
// =====================

func TestCheckout_PersistsOrderWithItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, []string{"M"})

	uc := usecase.NewOrderUsecase(infraRepo.NewTxManagerGorm(db))
	out, err := uc.Checkout(ctx, usecase.CheckoutInput{
		Items:   []usecase.CheckoutItemInput{{ProductID: p.ID, Quantity: 2, Size: "M"}},
		Address: "Main St 1",
		Email:   "a@b.com",
	})
	assert.NoError(t, err)
	assert.True(t, out.TotalProductsPrice.Equal(decimal.RequireFromString("59.98")))

	var orderCount, itemCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	db.Model(&model.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(1), itemCount)

	//スナップショットした価格と商品名はカタログ変更に影響されない
	assert.NoError(t, db.Model(&model.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"price": decimal.RequireFromString("99.99"),
			"name":  "Renamed T-Shirt",
		}).Error)

	orders, err := uc.ListOrders(ctx)
	assert.NoError(t, err)
	if assert.Len(t, orders, 1) {
		assert.True(t, orders[0].TotalProductsPrice.Equal(decimal.RequireFromString("59.98")))
		if assert.Len(t, orders[0].Items, 1) {
			assert.Equal(t, "Summer T-Shirt", orders[0].Items[0].Name)
			assert.True(t, orders[0].Items[0].UnitPrice.Equal(decimal.RequireFromString("29.99")))
		}
	}
}

func TestCheckout_UnknownProductPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)

	uc := usecase.NewOrderUsecase(infraRepo.NewTxManagerGorm(db))
	_, err := uc.Checkout(ctx, usecase.CheckoutInput{
		Items: []usecase.CheckoutItemInput{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
		Address: "Main St 1",
		Email:   "a@b.com",
	})
	assert.Error(t, err)

	var orderCount, itemCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	db.Model(&model.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

// =====================
// blob配信
// =====================

func TestBlobUsecase_FetchImage(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)
	img := seedBlobImage(t, db, p.ID, 0, []byte("jpeg-bytes"))

	uc := usecase.NewBlobUsecase(
		infraRepo.NewProductGormRepository(db),
		infraRepo.NewProductImageGormRepository(db),
	)

	out, err := uc.FetchImage(ctx, img.ID)
	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MimeType)
	assert.Equal(t, []byte("jpeg-bytes"), out.Data)

	//存在しないID
	_, err = uc.FetchImage(ctx, 9999)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}

	//URLのみでバイナリなしの画像も404
	url := "https://cdn.example.com/a.jpg"
	urlOnly, err := infraRepo.NewProductImageGormRepository(db).Create(ctx, model.ProductImage{
		ProductID: p.ID,
		URL:       &url,
	})
	assert.NoError(t, err)
	_, err = uc.FetchImage(ctx, urlOnly.ID)
	he, ok = usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}
}

func TestBlobUsecase_FetchModel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, nil)

	uc := usecase.NewBlobUsecase(
		infraRepo.NewProductGormRepository(db),
		infraRepo.NewProductImageGormRepository(db),
	)

	//blob未設定は404
	_, err := uc.FetchModel(ctx, p.ID)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}

	products := infraRepo.NewProductGormRepository(db)
	assert.NoError(t, products.SetModelBlob(ctx, p.ID, []byte("glb-bytes"), "model/gltf-binary"))

	out, err := uc.FetchModel(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "model/gltf-binary", out.MimeType)
	assert.Equal(t, []byte("glb-bytes"), out.Data)

	//モデル削除でまた404に戻る
	assert.NoError(t, products.ClearModel(ctx, p.ID))
	_, err = uc.FetchModel(ctx, p.ID)
	he, ok = usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}
}
