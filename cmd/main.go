package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
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

	"github.com/sbilibin2017/atm-ledger/internal/bootstrap"
	"github.com/sbilibin2017/atm-ledger/internal/handlers"
	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/middlewares"
	"github.com/sbilibin2017/atm-ledger/internal/repositories"
	"github.com/sbilibin2017/atm-ledger/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	logLevel, logFile,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, redisExpSecond,
		kafkaBrokers, kafkaTopic,
		randomSeed,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), os.Stdin, os.Stdout,
		logLevel, logFile,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, redisExpSecond,
		kafkaBrokers, kafkaTopic,
		randomSeed,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting ATM ledger. Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the logging, database, Redis, Kafka and seeding configuration.
// Redis is disabled when REDIS_HOST is empty, Kafka when KAFKA_BROKERS is empty.
func parseConfig(path string) (
	logLevel, logFile string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, redisExpSecond int,
	kafkaBrokers []string, kafkaTopic string,
	randomSeed int64,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	logFile = getEnv("APP_LOG_FILE", "atm.log")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "atm")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "4")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if redisExpSecond, err = strconv.Atoi(getEnv("REDIS_EXP_SECOND", "60")); err != nil {
		return
	}

	// Kafka config
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			kafkaBrokers = append(kafkaBrokers, broker)
		}
	}
	kafkaTopic = getEnv("KAFKA_TOPIC", "atm-transactions")

	// Seeding config
	if randomSeed, err = strconv.ParseInt(getEnv("RANDOM_SEED", "0"), 10, 64); err != nil {
		return
	}

	return
}

// run initializes the logger, database, optional Redis cache and Kafka writer,
// bootstraps the schema and runs the ATM menu on in/out until exit or a signal.
func run(ctx context.Context, in io.Reader, out io.Writer,
	logLevel, logFile string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, redisExpSecond int,
	kafkaBrokers []string, kafkaTopic string,
	randomSeed int64,
) error {
	// Initialize logger
	var outputPaths []string
	if logFile != "" {
		outputPaths = append(outputPaths, logFile)
	}
	if err := logger.Initialize(logLevel, outputPaths...); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", pgHost, "port", pgPort, "db", pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)

	// Connect to Redis
	var (
		reportCache services.ReportCache
		invalidator services.ReportInvalidator
	)
	if redisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password:     redisPassword,
			DB:           redisDB,
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdleConns,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Warnw("Redis unavailable, reports are not cached", "error", err)
		} else {
			cacheRepo := repositories.NewReportCacheRepository(rdb, time.Duration(redisExpSecond)*time.Second)
			reportCache = cacheRepo
			invalidator = cacheRepo
		}
	}

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(kafkaBrokers...),
			Topic:                  kafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Publishing transactions to Kafka", "brokers", kafkaBrokers, "topic", kafkaTopic)
	}

	if randomSeed == 0 {
		randomSeed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(randomSeed))

	uow := middlewares.NewUnitOfWork(db, logger.Log)

	// Initialize repositories
	branchReadRepo := repositories.NewBranchReadRepository(db, middlewares.GetTxFromContext)
	branchWriteRepo := repositories.NewBranchWriteRepository(db, middlewares.GetTxFromContext)
	accountReadRepo := repositories.NewAccountReadRepository(db, middlewares.GetTxFromContext)
	accountWriteRepo := repositories.NewAccountWriteRepository(db, middlewares.GetTxFromContext)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db)

	// Schema and branches
	if err := bootstrap.New(db, uow, branchReadRepo, branchWriteRepo, rnd).Run(ctx); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	// Initialize services
	pinService := services.NewPinService(accountReadRepo)
	ledgerService := services.NewLedgerService(
		uow,
		accountReadRepo, accountWriteRepo,
		branchReadRepo, branchWriteRepo,
		txnWriteRepo,
		pinService,
		rnd,
		invalidator,
		kafkaWriter,
	)
	reportService := services.NewReportService(accountReadRepo, branchReadRepo, txnReadRepo, reportCache)

	// Initialize handlers
	menu := handlers.NewMenu(handlers.NewConsole(in, out), handlers.MenuActions{
		CreateAccount: handlers.NewCreateAccountHandler(ledgerService, reportService, pinService),
		ShowAccount:   handlers.NewShowAccountHandler(reportService),
		Deposit:       handlers.NewDepositHandler(ledgerService),
		Withdraw:      handlers.NewWithdrawHandler(ledgerService, reportService, pinService),
		Transfer:      handlers.NewTransferHandler(ledgerService, reportService, pinService),
		ListBranches:  handlers.NewListBranchesHandler(reportService),
		Stats:         handlers.NewStatsHandler(reportService),
	})

	logger.Log.Info("ATM menu started")
	if err := menu.Run(ctx); err != nil {
		return err
	}
	logger.Log.Info("ATM menu stopped")
	return nil
}
