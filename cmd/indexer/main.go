// Indexer mirrors product events from Kafka into the Elasticsearch index
// that backs /products/search.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"

	"github.com/vmakarenko/storefront-api/internal/config"
	"github.com/vmakarenko/storefront-api/internal/events"
	"github.com/vmakarenko/storefront-api/internal/logging"
	"github.com/vmakarenko/storefront-api/internal/search"
	"github.com/vmakarenko/storefront-api/internal/transport"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.ESURL, "ES_URL")
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("missing required env KAFKA_BROKERS")
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName+"-indexer")
	slog.SetDefault(logger)

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, "product-indexer", events.TopicProductEvents)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := func(ctx context.Context, m kafka.Message) error {
		var ev transport.ProductEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			// malformed payloads are logged and skipped, not retried forever
			logger.Warn("skipping malformed event", "offset", m.Offset, "error", err)
			return nil
		}

		switch ev.Type {
		case "product_created", "product_updated":
			if ev.Product == nil {
				return fmt.Errorf("event %s without product payload", ev.Type)
			}
			return search.IndexProduct(ctx, esClient, cfg.ESIndex, *ev.Product)
		case "product_deleted":
			return search.DeleteProduct(ctx, esClient, cfg.ESIndex, ev.ProductID)
		default:
			return nil
		}
	}

	logger.Info("indexer started", "topic", events.TopicProductEvents, "index", cfg.ESIndex)
	if err := consumer.Run(ctx, logger, handler); err != nil {
		log.Fatalf("consumer: %v", err)
	}
	logger.Info("indexer stopped")
}
