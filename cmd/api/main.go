package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/donghaechoir/choir-backend/internal/config"
	"github.com/donghaechoir/choir-backend/internal/handler"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/middleware"
	"github.com/donghaechoir/choir-backend/internal/migration"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/internal/routes"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/donghaechoir/choir-backend/pkg/imagehost"
	"github.com/donghaechoir/choir-backend/pkg/jwt"
	pkglogger "github.com/donghaechoir/choir-backend/pkg/logger"
	pkgredis "github.com/donghaechoir/choir-backend/pkg/redis"
	pkgstorage "github.com/donghaechoir/choir-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	// 로거 초기화
	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL 연결
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis 연결 (없어도 기동은 가능: 단일 인스턴스 브로드캐스트만 동작)
	redisClient, err := pkgredis.Connect(pkgredis.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		pkglogger.Warn("Redis 연결 실패: %v (단일 인스턴스 모드로 계속)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	// 실시간 미러 허브
	hub := live.NewHub(redisClient)
	go hub.Run()

	// JWT
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repository
	memberRepo := repository.NewMemberRepository(db)
	joinRepo := repository.NewJoinRequestRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Service
	sessionSvc := service.NewSessionService(memberRepo, joinRepo, cfg.Session.ResolveTimeout)
	authSvc := service.NewAuthService(memberRepo, sessionSvc, jwtManager, cfg.OAuth)
	memberSvc := service.NewMemberService(memberRepo, hub)
	joinSvc := service.NewJoinService(joinRepo, memberRepo, hub)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, hub)
	settingsSvc := service.NewSettingsService(settingsRepo, hub)
	boardSvc := service.NewBoardService(boardRepo, hub)

	var bucket *pkgstorage.S3Client
	if cfg.Storage.Enabled {
		bucket, err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.Warn("스토리지 초기화 실패: %v (이미지 호스트로 대체)", err)
			bucket = nil
		}
	}
	uploadSvc := service.NewUploadService(imagehost.NewClient(cfg.ImageHost.APIKey), bucket)

	// Handler
	authHandler := handler.NewAuthHandler(authSvc)
	sessionHandler := handler.NewSessionHandler(settingsSvc, boardSvc)
	memberHandler := handler.NewMemberHandler(memberSvc, cfg.App.Origin)
	joinHandler := handler.NewJoinHandler(joinSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	boardHandler := handler.NewBoardHandler(boardSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	dashboardHandler := handler.NewDashboardHandler(memberSvc, settingsSvc, boardSvc, joinSvc, attendanceSvc)
	wsHandler := handler.NewWSHandler(hub, memberSvc, joinSvc, attendanceSvc, settingsSvc, boardSvc, cfg.CORS.AllowOrigins)

	router := gin.Default()

	// CORS 설정
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "choir-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(
		router,
		authHandler,
		sessionHandler,
		memberHandler,
		joinHandler,
		attendanceHandler,
		settingsHandler,
		boardHandler,
		uploadHandler,
		dashboardHandler,
		wsHandler,
		jwtManager,
		sessionSvc,
	)

	// 서버 시작
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDB MySQL 연결 초기화
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+09:00'"

	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, err
	}

	db.Exec("SET NAMES utf8mb4")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s, delimiter string) []string {
	parts := strings.Split(s, delimiter)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
