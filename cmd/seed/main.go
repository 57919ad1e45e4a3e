package main

import (
	"context"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"github.com/joho/godotenv"
	"github.com/pquerna/otp/totp"
	"github.com/shopspring/decimal"
)

// 管理者ユーザーとサンプルデータを投入する。
// TOTPシークレットは作成時に一度だけ表示されるので、認証アプリに登録すること。
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg)

	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Collection{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductSize{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate failed")
	}

	ctx := context.Background()
	users := infraRepo.NewUserGormRepository(gormDB)

	const username = "admin"

	//既存ならシークレットは変えない。再表示もしない。
	if u, err := users.FindByUsername(ctx, username); err == nil {
		logger.Info().Str("username", u.Username).Msg("admin user already exists")
		return
	} else if err != repo.ErrNotFound {
		logger.Fatal().Err(err).Msg("user lookup failed")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "storefront",
		AccountName: username,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("totp secret generation failed")
	}

	u, err := users.Create(ctx, model.User{
		Username:   username,
		TOTPSecret: key.Secret(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("admin user creation failed")
	}

	logger.Info().Str("username", u.Username).Str("totp_secret", key.Secret()).
		Str("otpauth_url", key.URL()).
		Msg("admin user created, scan the secret in your authenticator app")

	//サンプルカタログ
	collections := infraRepo.NewCollectionGormRepository(gormDB)
	products := infraRepo.NewProductGormRepository(gormDB)
	sizes := infraRepo.NewProductSizeGormRepository(gormDB)
	images := infraRepo.NewProductImageGormRepository(gormDB)

	col, err := collections.Create(ctx, model.Collection{
		Name:        "Summer 2025",
		Description: "The hottest looks for the summer.",
		ReleaseDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("collection seed failed")
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
		logger.Fatal().Err(err).Msg("product seed failed")
	}

	if err := sizes.CreateBulk(ctx, p.ID, []string{"S", "M", "L"}); err != nil {
		logger.Fatal().Err(err).Msg("size seed failed")
	}

	for i, url := range []string{"/images/tshirt-front.jpg", "/images/tshirt-back.jpg"} {
		u := url
		if _, err := images.Create(ctx, model.ProductImage{
			ProductID:    p.ID,
			URL:          &u,
			DisplayOrder: i,
		}); err != nil {
			logger.Fatal().Err(err).Msg("image seed failed")
		}
	}

	logger.Info().Str("collection", col.Name).Str("product", p.Name).Msg("sample catalog created")
}
