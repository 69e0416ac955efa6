package service

import (
	"testing"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a unique in-memory database per test to avoid cross-test
// collisions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedUser inserts a user directly, bypassing the service (and its audit).
func seedUser(t *testing.T, db *gorm.DB, email, password string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func countActions(t *testing.T, db *gorm.DB, actionType, contentType string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&model.Action{}).
		Where("action_type = ? AND content_type = ?", actionType, contentType).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count actions: %v", err)
	}
	return n
}

func newAudit(db *gorm.DB) *AuditRecorder {
	return NewAuditRecorder(repository.NewActionRepository(db), nil)
}

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db), newAudit(db), repository.NewTransactionManager(db))
}

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductImageRepository(db),
		newAudit(db),
		repository.NewTransactionManager(db),
	)
}
