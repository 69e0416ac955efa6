package handler

import (
	"strconv"
	"testing"
	"time"

	"backend/internal/database"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires a full router against an in-memory database, mirroring the
// wiring in cmd/api.
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	media, err := storage.NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}

	txManager := repository.NewTransactionManager(db)
	audit := service.NewAuditRecorder(repository.NewActionRepository(db), nil)

	userSvc := service.NewUserService(repository.NewUserRepository(db), audit, txManager)
	productSvc := service.NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductImageRepository(db),
		audit,
		txManager,
	)
	authSvc := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		middleware.GetJWTSecret(),
	)
	actionSvc := service.NewActionService(repository.NewActionRepository(db))

	router := gin.New()
	root := router.Group("")
	NewAuthHandler(authSvc).RegisterRoutes(root)
	NewUserHandler(userSvc).RegisterRoutes(root)
	NewProductHandler(productSvc, media).RegisterRoutes(root)
	NewActionHandler(actionSvc).RegisterRoutes(root)

	return &testEnv{db: db, router: router}
}

// seedUser inserts an account directly, bypassing the service layer.
func (e *testEnv) seedUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Email: email, Password: string(hashed), IsActive: true}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// accessToken mints a valid Bearer token for the given user, signed with the
// same secret the middleware verifies against.
func (e *testEnv) accessToken(t *testing.T, user *model.User) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"staff": user.IsStaff,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
