package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/db"
	"wardmap.xyz/ward-track-service/pkg/dispatch"
	"wardmap.xyz/ward-track-service/pkg/guard"
	guardHttp "wardmap.xyz/ward-track-service/pkg/http"
	"wardmap.xyz/ward-track-service/pkg/queue"
	"wardmap.xyz/ward-track-service/pkg/ws"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	guardDbType := os.Getenv(common.EnvKeyGuardDBType)
	switch guardDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown GUARD_DB_TYPE: " + guardDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyGuardHttpHostPort))
	amqpURL := strings.TrimSpace(os.Getenv(common.EnvKeyGuardAmqpURL))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyGuardDefaultRate), 64); err != nil {
		log.Fatal("Invalid GUARD_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyGuardDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid GUARD_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	dispatcher := dispatch.New()

	guardCore := guard.Guard{
		Db:     *dbInstance,
		Pusher: dispatcher,
	}
	guardCore.WithServices(guard.ServiceOpts{
		Location:    guardCore.GetILocation(),
		Fence:       guardCore.GetIFence(),
		Alert:       guardCore.GetIAlert(),
		Application: guardCore.GetIApplication(),
		Notify:      guardCore.GetINotify(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the workflow engine only runs when a broker is configured; the
	// rest of the service works without it
	if amqpURL != "" {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			log.Fatalf("failed to connect to broker: %v", err)
		}
		defer conn.Close()

		channel, err := conn.Channel()
		if err != nil {
			log.Fatalf("failed to open broker channel: %v", err)
		}
		defer channel.Close()

		if err := queue.DeclareTopology(channel); err != nil {
			log.Fatalf("failed to declare broker topology: %v", err)
		}

		publisher := queue.NewPublisher(channel)
		guardCore.Publisher = publisher

		consumer := queue.NewConsumer(channel, guardCore.Application, publisher)
		go func() {
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Workflow consumer stopped", zap.Error(err))
			}
		}()

		logger.Info("Workflow engine connected", zap.String("queue", queue.ApplyQueue))
	} else {
		logger.Warn("GUARD_AMQP_URL not set, application workflow disabled")
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &guardHttp.RestfulServer{
		Server:           gin.Default(),
		Guard:            &guardCore,
		RateLimiterStore: guard.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	wsHandler := &ws.Handler{Dispatcher: dispatcher}
	rs.Server.GET("/ws", wsHandler.Serve)

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down, draining live sessions")
		dispatcher.Shutdown()
		os.Exit(0)
	}()

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
