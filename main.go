package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/patrol-api/api"
	archiveapi "github.com/beka-birhanu/patrol-api/api/archive"
	api_i "github.com/beka-birhanu/patrol-api/api/i"
	"github.com/beka-birhanu/patrol-api/api/identity"
	patrolapi "github.com/beka-birhanu/patrol-api/api/patrol"
	"github.com/beka-birhanu/patrol-api/config"
	"github.com/beka-birhanu/patrol-api/infrastruture/cache"
	"github.com/beka-birhanu/patrol-api/infrastruture/events"
	"github.com/beka-birhanu/patrol-api/infrastruture/logger"
	"github.com/beka-birhanu/patrol-api/infrastruture/repo"
	"github.com/beka-birhanu/patrol-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/patrol-api/infrastruture/sqlite"
	"github.com/beka-birhanu/patrol-api/infrastruture/token"
	"github.com/beka-birhanu/patrol-api/service"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient      *mongo.Client
	sqliteStore      *sqlite.Store
	redisClient      *redis.Client
	natsPublisher    *events.NatsPublisher
	mapRepo          i.MapRepo
	resultRepo       i.ResultRepo
	resultCache      i.ResultCache
	resultRanking    i.ResultRanking
	eventPublisher   i.EventPublisher
	patrolService    i.PatrolOptimizer
	archiveService   i.Archiver
	jwtTokenizer     i.Tokenizer
	authService      i.Authenticator
	authController   api_i.Controller
	patrolController api_i.Controller
	mapController    api_i.Controller
	router           *api.Router
	appLogger        i.Logger
)

func mustLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMongoRepos(ctx context.Context) {
	mapRepo = repo.NewMapRepo(mongoClient, config.Envs.DBName, "maps")

	var err error
	resultRepo, err = repo.NewResultRepo(ctx, mongoClient, config.Envs.DBName, "results")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating result repository: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Mongo repositories initialized")
}

func initSQLite() {
	var err error
	sqliteStore, err = sqlite.Open(config.Envs.SQLitePath)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Opening SQLite database %s: %v", config.Envs.SQLitePath, err))
		os.Exit(1)
	}
	mapRepo = sqliteStore.Maps()
	resultRepo = sqliteStore.Results()
	appLogger.Info(fmt.Sprintf("SQLite repositories initialized at %s", config.Envs.SQLitePath))
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, outcome caching and rankings disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	var err error
	resultCache, err = cache.NewRedisCache(redisClient, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating result cache: %v", err))
		os.Exit(1)
	}
	resultRanking, err = sortedstorage.NewRedisRanking(redisClient, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating result ranking: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initNats() {
	if config.Envs.NatsURL == "" {
		appLogger.Warning("NATS_URL not set, result events disabled")
		return
	}

	var err error
	natsPublisher, err = events.NewNatsPublisher(events.Config{
		URL:            config.Envs.NatsURL,
		Name:           "patrol-api",
		ReconnectWait:  2 * time.Second,
		MaxReconnects:  -1,
		ConnectTimeout: 5 * time.Second,
	}, mustLogger("EVENTS", config.ColorMagenta))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Connecting to NATS: %v", err))
		os.Exit(1)
	}
	eventPublisher = natsPublisher
	appLogger.Info("Connected to NATS")
}

func initPatrolService() {
	var err error
	patrolService, err = service.NewPatrolService(service.PatrolConfig{
		Cache:  resultCache,
		Logger: mustLogger("PATROL", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating patrol service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Patrol service initialized")
}

func initArchiveService() {
	var err error
	archiveService, err = service.NewArchiveService(service.ArchiveConfig{
		Maps:                  mapRepo,
		Results:               resultRepo,
		Ranking:               resultRanking,
		Events:                eventPublisher,
		Patrol:                patrolService,
		Logger:                mustLogger("ARCHIVE", config.ColorBlue),
		DefaultSimulationRuns: config.Envs.DefaultSimulationRuns,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating archive service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Archive service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(config.Envs.AdminKey, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	patrolController = patrolapi.NewController(patrolService)
	mapController = archiveapi.NewController(archiveService)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, patrolController, mapController},
		AuthorizationMiddleware: identity.Authoriz(t),
		AllowedOrigins:          config.Envs.CORSOrigins,
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger = mustLogger("APP", config.ColorGreen)

	switch config.Envs.StoreDriver {
	case config.StoreSQLite:
		initSQLite()
		defer sqliteStore.Close()
	default:
		initMongo(ctx)
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		initMongoRepos(ctx)
	}

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initNats()
	if natsPublisher != nil {
		defer natsPublisher.Close()
	}

	initPatrolService()
	initArchiveService()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
