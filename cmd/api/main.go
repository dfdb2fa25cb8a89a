package main

import (
	"context"
	"errors"
	"os"
	"time"

	"grocery/internal/config"
	"grocery/internal/domain/model"
	"grocery/internal/handler"
	"grocery/internal/infra/db"
	infraRepo "grocery/internal/infra/repository"
	repo "grocery/internal/repository"
	"grocery/internal/server"
	"grocery/internal/usecase"
	"grocery/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	logger.Init()
	defer logger.Log.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("config load failed", zap.Error(err))
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.AdminUser{},
		&model.Product{},
		&model.Order{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		logger.Log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	adminRepo := infraRepo.NewAdminUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//初回起動用の管理者を環境変数から用意する
	if err := seedAdmin(adminRepo); err != nil {
		logger.Log.Fatal("admin seed failed", zap.Error(err))
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(customerRepo, adminRepo, idGen, clock, []byte(cfg.JWTSecret), 15*time.Minute)
	customerUC := usecase.NewCustomerUsecase(txManager, customerRepo)
	productUC := usecase.NewProductUsecase(txManager, productRepo)
	inventoryUC := usecase.NewInventoryUsecase(txManager, inventoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	reportUC := usecase.NewReportUsecase(orderRepo, customerRepo)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	productH := handler.NewProductHandler(productUC)
	customerH := handler.NewCustomerHandler(customerUC)
	orderH := handler.NewOrderHandler(orderUC)
	adminProductH := handler.NewAdminProductHandler(productUC, inventoryUC)
	adminOrderH := handler.NewAdminOrderHandler(orderUC, reportUC)

	//Server起動
	logger.Log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
	if err := server.Start(cfg, authH, productH, customerH, orderH, adminProductH, adminOrderH); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

// ADMIN_USERNAME / ADMIN_PASSWORD があれば管理者を作る（既存ならスキップ）
func seedAdmin(admins repo.AdminUserRepository) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	ctx := context.Background()
	_, err := admins.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return admins.Create(ctx, model.AdminUser{
		Username:     username,
		PasswordHash: string(hashed),
	})
}
