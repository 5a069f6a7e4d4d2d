package kafka

import (
	"testing"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestPartitionBalancer(t *testing.T) {
	assert.Equal(t, 2, PartitionBalancer(2).Balance(kafka.Message{Key: []byte("a")}, 0, 1, 2, 3))
	assert.Equal(t, 0, PartitionBalancer(7).Balance(kafka.Message{}, 0, 1))
}

func TestCreateKafkaProducer(t *testing.T) {
	cfg := &config.Config{}
	cfg.KafkaConfig.BrokerAddress = "localhost:9092"
	cfg.KafkaConfig.BrokerTopic = "order-events"
	cfg.KafkaConfig.BrokerPartition = 1

	writer := CreateKafkaProducer(cfg)
	defer writer.Close()

	assert.Equal(t, "order-events", writer.Topic)
	assert.Equal(t, PartitionBalancer(1), writer.Balancer)
}
