package events

import (
	"fmt"
	"strings"

	"github.com/demandcast/demandcast/internal/config"
)

// Queue backend types
const (
	TypeMemory = "memory"
	TypeNATS   = "nats"
	TypeRedis  = "redis"
	TypeKafka  = "kafka"
)

// NewPublisher creates a Publisher instance based on configuration.
// Default is the in-memory backend if type is not specified.
func NewPublisher(cfg config.QueueConfig) (Publisher, error) {
	queueType := strings.ToLower(cfg.Type)
	if queueType == "" {
		queueType = TypeMemory
	}

	switch queueType {
	case TypeMemory:
		return NewMemoryPublisher(), nil

	case TypeNATS:
		return newNATSPublisher(cfg.URL)

	case TypeRedis:
		return newRedisPublisher(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
		})

	case TypeKafka:
		return newKafkaPublisher(KafkaConfig{
			Brokers: cfg.KafkaBrokers,
		})

	default:
		return nil, fmt.Errorf("unsupported queue type: %s (supported: memory, nats, redis, kafka)", queueType)
	}
}
