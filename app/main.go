package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/controllers"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	"github.com/AntonZhikin/OfficeDepartment/internal/routes"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/migrations"
	"github.com/AntonZhikin/OfficeDepartment/pkg/config"
	"github.com/AntonZhikin/OfficeDepartment/pkg/database/postgresql"
	"github.com/AntonZhikin/OfficeDepartment/pkg/logger"
	"github.com/AntonZhikin/OfficeDepartment/pkg/middleware"
	"github.com/AntonZhikin/OfficeDepartment/pkg/service"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer pool.Close()

	if err := postgresql.Migrate(cfg.Postgres.DSN, migrations.FS); err != nil {
		log.Fatal("Не удалось применить миграции", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
	}
	defer redisClient.Close()

	jwtService := service.NewJWTService(
		cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.AccessTokenTTL, log,
	)
	hasher := service.NewPasswordHasher()

	txManager := repositories.NewTxManager(pool)
	headOfficeRepo := repositories.NewHeadOfficeRepository()
	branchRepo := repositories.NewBranchOfficeRepository()
	departmentRepo := repositories.NewDepartmentRepository()
	employeeRepo := repositories.NewEmployeeRepository()
	taskRepo := repositories.NewOfficeTaskRepository()
	userRepo := repositories.NewUserRepository()
	auditLogRepo := repositories.NewAuditLogRepository()
	cacheRepo := repositories.NewCacheRepository(redisClient)

	audit := services.NewAuditRecorder(auditLogRepo)

	headOfficeService := services.NewHeadOfficeService(pool, headOfficeRepo, branchRepo, departmentRepo, txManager, audit, log)
	branchService := services.NewBranchOfficeService(pool, branchRepo, headOfficeRepo, txManager, audit, log)
	departmentService := services.NewDepartmentService(pool, departmentRepo, headOfficeRepo, employeeRepo, txManager, audit, log)
	employeeService := services.NewEmployeeService(pool, employeeRepo, branchRepo, departmentRepo, userRepo, hasher, txManager, audit, log)
	taskService := services.NewOfficeTaskService(pool, taskRepo, branchRepo, departmentRepo, employeeRepo, txManager, audit, log)
	authService := services.NewAuthService(pool, userRepo, employeeRepo, cacheRepo, txManager, audit, hasher, jwtService, cfg.Auth, cfg.Seed, log)
	auditLogService := services.NewAuditLogService(pool, auditLogRepo)

	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal("Не удалось создать администратора по умолчанию", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("Запрос",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Validator = utils.NewValidator(validator.New())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	routes.Register(e, routes.Controllers{
		Auth:         controllers.NewAuthController(authService, log),
		HeadOffice:   controllers.NewHeadOfficeController(headOfficeService, log),
		BranchOffice: controllers.NewBranchOfficeController(branchService, log),
		Department:   controllers.NewDepartmentController(departmentService, log),
		Employee:     controllers.NewEmployeeController(employeeService, log),
		OfficeTask:   controllers.NewOfficeTaskController(taskService, log),
		AuditLog:     controllers.NewAuditLogController(auditLogService, log),
	}, authMiddleware)

	log.Info("Сервер запускается", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Сервер остановлен", zap.Error(err))
	}
}
