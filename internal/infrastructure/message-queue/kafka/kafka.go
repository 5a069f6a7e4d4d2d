package kafka

import (
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/segmentio/kafka-go"
)

// CreateKafkaReader reads the order event partition directly, without a
// consumer group, so every instance sees every event and can push it to its
// own websocket clients.
func CreateKafkaReader(config *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{config.KafkaConfig.BrokerAddress},
		Topic:            config.KafkaConfig.BrokerTopic,
		Partition:        config.KafkaConfig.BrokerPartition,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.LastOffset,
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}

// CreateKafkaProducer returns a writer pinned to the partition the readers
// consume. The writer dials lazily and redials after the broker drops a
// connection.
func CreateKafkaProducer(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:        config.KafkaConfig.BrokerTopic,
		Balancer:     PartitionBalancer(config.KafkaConfig.BrokerPartition),
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}
}

// PartitionBalancer sends every message to one fixed partition.
type PartitionBalancer int

func (b PartitionBalancer) Balance(msg kafka.Message, partitions ...int) int {
	for _, p := range partitions {
		if p == int(b) {
			return p
		}
	}
	return partitions[0]
}
