package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/talentsift/screening/internal/ai/advisor"
	"github.com/talentsift/screening/internal/ai/embeddings"
	"github.com/talentsift/screening/internal/ai/jdparser"
	"github.com/talentsift/screening/internal/ai/resumeparser"
	"github.com/talentsift/screening/pkg/auth"
	"github.com/talentsift/screening/pkg/fsx"
	"github.com/talentsift/screening/pkg/fsx/fsxs3"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate/candidateapi"
	"github.com/talentsift/screening/screening/candidate/candidateinfra"
	"github.com/talentsift/screening/screening/candidate/candidatesrv"
	"github.com/talentsift/screening/screening/candidate/worker"
	"github.com/talentsift/screening/screening/email/emailapi"
	"github.com/talentsift/screening/screening/email/emailinfra"
	"github.com/talentsift/screening/screening/email/emailsrv"
	"github.com/talentsift/screening/screening/job/jobapi"
	"github.com/talentsift/screening/screening/job/jobinfra"
	"github.com/talentsift/screening/screening/job/jobsrv"
	"github.com/talentsift/screening/screening/match/matchapi"
	"github.com/talentsift/screening/screening/match/matchinfra"
	"github.com/talentsift/screening/screening/match/matchsrv"
)

const intakeQueueName = "resume_intake"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Auth
	TokenService *auth.TokenService

	// Domain Services
	JobService       *jobsrv.JobService
	CandidateService *candidatesrv.Service
	MatchService     *matchsrv.Service
	EmailService     *emailsrv.Service

	// Background Workers
	IntakeWorker *worker.IntakeWorker

	// API Handlers
	JobHandlers       *jobapi.Handlers
	CandidateHandlers *candidateapi.Handlers
	MatchHandlers     *matchapi.Handlers
	EmailHandlers     *emailapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.New(c.S3Client, awsBucket)

	// 4. Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewTokenService(jwtSecret, "talentsift", 24*time.Hour)
}

func (c *Container) initServices() {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	openaiModel := os.Getenv("OPENAI_MODEL")

	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	intakeRepo := candidateinfra.NewPostgresIntakeRepository(c.DB)
	matchRepo := matchinfra.NewPostgresMatchRepository(c.DB)
	emailRepo := emailinfra.NewPostgresEmailRepository(c.DB)

	intakeQueue := candidateinfra.NewRedisIntakeQueue(c.Redis, intakeQueueName)

	// --- AI Clients ---
	jobParser := jdparser.New(openaiKey, openaiModel)
	resumeParser := resumeparser.New(openaiKey, openaiModel)
	embedder := embeddings.New(openaiKey)
	scorer := advisor.New(openaiKey, openaiModel)

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(jobRepo, jobParser)

	c.CandidateService = candidatesrv.NewService(
		candidateRepo,
		intakeRepo,
		resumeParser,
		embedder,
		c.FileSystem,
		intakeQueue,
	)

	c.MatchService = matchsrv.NewService(
		matchRepo,
		jobRepo,
		candidateRepo,
		matchsrv.NewCombiner(scorer),
	)

	c.EmailService = emailsrv.NewService(
		emailRepo,
		jobRepo,
		candidateRepo,
		matchRepo,
		newSMTPSenderFromEnv(),
	)

	// --- Background Workers ---
	workers := envInt("INTAKE_WORKERS", 3)
	c.IntakeWorker = worker.NewIntakeWorker(c.CandidateService, intakeQueue, workers)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.MatchHandlers = matchapi.NewHandlers(c.MatchService)
	c.EmailHandlers = emailapi.NewHandlers(c.EmailService)
}

func newSMTPSenderFromEnv() *emailinfra.SMTPSender {
	return emailinfra.NewSMTPSender(
		os.Getenv("SMTP_HOST"),
		envInt("SMTP_PORT", 587),
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASSWORD"),
	)
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
