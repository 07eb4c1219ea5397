package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-currency-ledger/internal/facades"
	"github.com/sbilibin2017/gw-currency-ledger/internal/handlers"
	"github.com/sbilibin2017/gw-currency-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
	"github.com/sbilibin2017/gw-currency-ledger/internal/repositories"
	"github.com/sbilibin2017/gw-currency-ledger/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-currency-ledger/docs"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Rate providers accepted in RATES_PROVIDER.
const (
	providerNBP  = "nbp"
	providerGRPC = "grpc"
)

const maxBaseFraction = 2

// @title gw-currency-ledger API
// @version 1.0.0
// @description Currency exchange ledger: fund the account, buy and sell currencies at the live mid rate, list holdings and history
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int
	PGTxIsolation  string
	PGAutoMigrate  bool

	// RedisHost empty disables the rate cache.
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	RatesProvider     string
	RatesBaseCurrency string
	RatesTimeout      time.Duration
	RatesRateLimit    float64
	RatesRateBurst    int
	NBPBaseURL        string
	NBPTable          string

	GWHost string
	GWPort string

	// KafkaBrokers empty disables event publishing.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExpSecond int

	LedgerMaxRetries int
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, rates, Kafka, JWT and ledger configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	// optional settings may be switched off by setting them to ""
	getOptional := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(val)
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", "json")
	cfg.CORSOrigins = splitList(getEnv("APP_CORS_ORIGINS", "*"))

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	cfg.PGTxIsolation = getEnv("POSTGRES_TX_ISOLATION", "read_committed")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}
	if cfg.PGAutoMigrate, err = strconv.ParseBool(getEnv("POSTGRES_AUTO_MIGRATE", "true")); err != nil {
		err = fmt.Errorf("POSTGRES_AUTO_MIGRATE: %w", err)
		return
	}

	// Redis config
	cfg.RedisHost = getOptional("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}

	// Rates config
	cfg.RatesProvider = strings.ToLower(getEnv("RATES_PROVIDER", providerNBP))
	cfg.RatesBaseCurrency = models.NormalizeCurrency(getEnv("RATES_BASE_CURRENCY", models.DefaultBaseCurrency))
	cfg.NBPBaseURL = getEnv("NBP_BASE_URL", facades.DefaultNBPBaseURL)
	cfg.NBPTable = getEnv("NBP_TABLE", facades.DefaultNBPTable)
	timeoutMS, err := getInt("RATES_TIMEOUT_MS", "5000")
	if err != nil {
		return
	}
	cfg.RatesTimeout = time.Duration(timeoutMS) * time.Millisecond
	if cfg.RatesRateLimit, err = strconv.ParseFloat(getEnv("RATES_RATE_LIMIT", "5"), 64); err != nil {
		err = fmt.Errorf("RATES_RATE_LIMIT: %w", err)
		return
	}
	if cfg.RatesRateBurst, err = getInt("RATES_RATE_BURST", "5"); err != nil {
		return
	}

	// gRPC config
	cfg.GWHost = getEnv("GW_EXCHANGER_HOST", "localhost")
	cfg.GWPort = getEnv("GW_EXCHANGER_PORT", "50051")

	// Kafka config
	cfg.KafkaBrokers = splitList(getOptional("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "ledger-events")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	// Ledger config
	if cfg.LedgerMaxRetries, err = getInt("LEDGER_MAX_RETRIES", "3"); err != nil {
		return
	}

	err = cfg.validate()
	return
}

func (c config) validate() error {
	switch c.RatesProvider {
	case providerNBP, providerGRPC:
	default:
		return fmt.Errorf("RATES_PROVIDER: unknown provider %q", c.RatesProvider)
	}
	if c.RatesBaseCurrency == "" {
		return fmt.Errorf("RATES_BASE_CURRENCY is empty")
	}
	// NBP tables are always quoted in PLN
	if c.RatesProvider == providerNBP && c.RatesBaseCurrency != models.DefaultBaseCurrency {
		return fmt.Errorf("RATES_BASE_CURRENCY: provider %q quotes in %s, got %s",
			providerNBP, models.DefaultBaseCurrency, c.RatesBaseCurrency)
	}
	// balances and values are stored with two fraction digits
	if f := models.Fraction(c.RatesBaseCurrency); f > maxBaseFraction {
		return fmt.Errorf("RATES_BASE_CURRENCY: %s has %d fraction digits, at most %d supported",
			c.RatesBaseCurrency, f, maxBaseFraction)
	}
	if _, err := repositories.ParseIsolation(c.PGTxIsolation); err != nil {
		return fmt.Errorf("POSTGRES_TX_ISOLATION: %w", err)
	}
	if c.RatesTimeout <= 0 {
		return fmt.Errorf("RATES_TIMEOUT_MS must be positive")
	}
	if c.LedgerMaxRetries < 0 {
		return fmt.Errorf("LEDGER_MAX_RETRIES must not be negative")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// run initializes the logger, database, Redis, rate source, Kafka writer and
// HTTP server. It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}
	if cfg.PGAutoMigrate {
		if err := repositories.Migrate(ctx, db); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}

	isolation, err := repositories.ParseIsolation(cfg.PGTxIsolation)
	if err != nil {
		return err
	}

	// Connect to Redis
	var rateCache services.RateTableCache
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		rateCache = repositories.NewRateCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
	} else {
		logger.Log.Info("REDIS_HOST is empty, rate cache disabled")
	}

	// Rate source
	var rateSource services.RateSource
	switch cfg.RatesProvider {
	case providerGRPC:
		grpcAddr := fmt.Sprintf("%s:%s", cfg.GWHost, cfg.GWPort)
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("failed to connect to gRPC service at %s: %w", grpcAddr, err)
		}
		defer conn.Close()
		rateSource = facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn), cfg.RatesBaseCurrency)
	default:
		rateSource = facades.NewNBPRatesFacade(cfg.NBPBaseURL, cfg.NBPTable, cfg.RatesRateLimit, cfg.RatesRateBurst)
	}

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
	} else {
		logger.Log.Info("KAFKA_BROKERS is empty, ledger events disabled")
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txManager := repositories.NewTxManager(db, isolation)
	userRepo := repositories.NewUserRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, userRepo, tokens)
	ratesService := services.NewRatesService(rateSource, rateCache, cfg.RatesBaseCurrency, cfg.RatesTimeout)
	ledgerService := services.NewLedgerService(
		txManager, userRepo, holdingRepo, txnRepo, rateSource, kafkaWriter,
		services.WithBaseCurrency(cfg.RatesBaseCurrency),
		services.WithMaxRetries(cfg.LedgerMaxRetries),
		services.WithRateTimeout(cfg.RatesTimeout),
	)
	base := ledgerService.BaseCurrency()

	// Setup router
	r := newRouter(routes{
		register:    handlers.NewRegisterHandler(authService),
		login:       handlers.NewLoginHandler(authService, base),
		rates:       handlers.NewGetRatesHandler(ratesService),
		balance:     handlers.NewGetBalanceHandler(ledgerService, base),
		fund:        handlers.NewFundHandler(ledgerService, base),
		buy:         handlers.NewBuyHandler(ledgerService, base),
		sell:        handlers.NewSellHandler(ledgerService, base),
		holdings:    handlers.NewHoldingsHandler(ledgerService),
		history:     handlers.NewHistoryHandler(ledgerService, base),
		auth:        middlewares.AuthMiddleware(tokens),
		readTx:      middlewares.ReadTxMiddleware(db),
		corsOrigins: cfg.CORSOrigins,
		swaggerURL:  fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
