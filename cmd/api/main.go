package main

import (
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := config.NewLogger(cfg)

	//DB接続
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

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	collectionRepo := infraRepo.NewCollectionGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	imageRepo := infraRepo.NewProductImageGormRepository(gormDB)
	sizeRepo := infraRepo.NewProductSizeGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	collectionUC := usecase.NewCollectionUsecase(collectionRepo, productRepo)
	productUC := usecase.NewProductUsecase(txManager, productRepo, imageRepo, sizeRepo, collectionRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	blobUC := usecase.NewBlobUsecase(productRepo, imageRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:        handler.NewAuthHandler(cfg, authUC),
		Collections: handler.NewCollectionHandler(collectionUC),
		Products:    handler.NewProductHandler(productUC),
		Orders:      handler.NewOrderHandler(orderUC),
		Blobs:       handler.NewBlobHandler(blobUC),
	}

	//Server起動
	e := server.New(cfg, logger, handlers)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
