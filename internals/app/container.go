package app

import (
	"context"

	"github.com/iffarurrahat/matrimony-server-mern-project/config"
	middle "github.com/iffarurrahat/matrimony-server-mern-project/internals/middleware"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/account"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/candidate"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/review"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/session"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/notify"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/security"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/rabbitmq"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/redisstore"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Container struct {
	DB          *pgxpool.Pool
	RedisClient *redisstore.Client
	Logger      *zerolog.Logger

	amqpConn  *amqp091.Connection
	publisher *rabbitmq.Publisher

	sessionGate      *middle.SessionGate
	sessionHandler   *session.Handler
	accountHandler   *account.Handler
	candidateHandler *candidate.Handler
	reviewHandler    *review.Handler

	allowedOrigins []string
}

func NewContainer(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {

	redisClient, err := redisstore.New(cfg.Redis)
	if err != nil {
		return nil, err
	}

	validator := validator.New()

	tokenSvc := security.NewTokenService(cfg.Auth)

	// broker is optional: without it account events are dropped, nothing else changes
	var notifier account.Notifier = notify.NoopNotifier{}
	var amqpConn *amqp091.Connection
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ != nil {
		amqpConn, err = rabbitmq.NewConnection(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		if err := rabbitmq.SetupTopology(amqpConn, cfg.RabbitMQ); err != nil {
			return nil, err
		}
		publisher, err = rabbitmq.NewPublisher(amqpConn, cfg.RabbitMQ.ExchangeName, cfg.RabbitMQ.RoutingKey)
		if err != nil {
			return nil, err
		}
		notifier = notify.NewAccountNotifier(publisher)
	}

	accountRepo := account.NewRepository(db, logger)
	candidateRepo := candidate.NewRepository(db, logger)
	reviewRepo := review.NewRepository(db, logger)

	accountSvc := account.NewService(accountRepo, redisClient, notifier, cfg.Redis.CacheTTL, logger)
	candidateSvc := candidate.NewService(candidateRepo)

	accountHandler := account.NewHandler(accountSvc, validator)
	candidateHandler := candidate.NewHandler(candidateSvc)
	reviewHandler := review.NewHandler(reviewRepo)
	sessionHandler := session.NewHandler(tokenSvc, cfg)

	sessionGate := middle.NewSessionGate(tokenSvc, cfg.Auth.CookieName, logger)

	return &Container{
		DB:               db,
		RedisClient:      redisClient,
		Logger:           logger,
		amqpConn:         amqpConn,
		publisher:        publisher,
		sessionGate:      sessionGate,
		sessionHandler:   sessionHandler,
		accountHandler:   accountHandler,
		candidateHandler: candidateHandler,
		reviewHandler:    reviewHandler,
		allowedOrigins:   cfg.AllowedOrigins,
	}, nil
}

func (c *Container) Shutdown() error {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("publisher close failed")
		}
	}
	if c.amqpConn != nil {
		if err := c.amqpConn.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("amqp connection close failed")
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("redis close failed")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	return nil
}
