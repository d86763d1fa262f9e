package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublisher_RecordsPerSubject(t *testing.T) {
	pub := NewMemoryPublisher()
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, "a", []byte("one")))
	require.NoError(t, pub.Publish(ctx, "a", []byte("two")))
	require.NoError(t, pub.Publish(ctx, "b", []byte("three")))

	assert.Len(t, pub.Published("a"), 2)
	assert.Len(t, pub.Published("b"), 1)
	assert.Empty(t, pub.Published("c"))
}

func TestMemoryPublisher_CopiesData(t *testing.T) {
	pub := NewMemoryPublisher()
	data := []byte("original")
	require.NoError(t, pub.Publish(context.Background(), "s", data))

	data[0] = 'X'
	assert.Equal(t, []byte("original"), pub.Published("s")[0])
}

func TestPublishPredictionCreated(t *testing.T) {
	pub := NewMemoryPublisher()
	event := PredictionCreated{
		PredictionID:    "pred-1",
		Type:            models.PredictionTypeTrending,
		CategoryID:      "BOOKS",
		ConfidenceScore: 0.8,
		ValidUntil:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, PublishPredictionCreated(context.Background(), pub, event))

	published := pub.Published(SubjectPredictionCreated)
	require.Len(t, published, 1)

	var decoded PredictionCreated
	require.NoError(t, json.Unmarshal(published[0], &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishPredictionsArchived(t *testing.T) {
	pub := NewMemoryPublisher()
	event := PredictionsArchived{
		Count:      7,
		ArchivedAt: time.Date(2025, 3, 2, 3, 0, 0, 0, time.UTC),
	}

	require.NoError(t, PublishPredictionsArchived(context.Background(), pub, event))

	published := pub.Published(SubjectPredictionArchived)
	require.Len(t, published, 1)

	var decoded PredictionsArchived
	require.NoError(t, json.Unmarshal(published[0], &decoded))
	assert.Equal(t, event, decoded)
}

func TestNewPublisher_DefaultsToMemory(t *testing.T) {
	pub, err := NewPublisher(config.QueueConfig{})
	require.NoError(t, err)
	_, ok := pub.(*MemoryPublisher)
	assert.True(t, ok)
}

func TestNewPublisher_UnsupportedType(t *testing.T) {
	_, err := NewPublisher(config.QueueConfig{Type: "rabbitmq"})
	assert.Error(t, err)
}

func TestNewPublisher_KafkaRequiresBrokers(t *testing.T) {
	_, err := NewPublisher(config.QueueConfig{Type: TypeKafka})
	assert.Error(t, err)
}
