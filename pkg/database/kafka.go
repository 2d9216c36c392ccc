package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriterWithRetry builds a Kafka writer and confirms the
// connection by sending a probe message.
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	var writer *kafka.Writer
	var err error

	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers:  k.Brokers,
			Topic:    k.Topic,
			Balancer: &kafka.LeastBytes{},
		})

		err = writer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte("ping"),
			Value: []byte("ping"),
		})
		if err == nil {
			log.Printf("Kafka writer ready (attempt %d)", attempt)
			return writer, nil
		}

		log.Printf("Kafka writer failed (attempt %d/%d): %v", attempt, k.RetryCount, err)
		writer.Close()
		time.Sleep(k.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("kafka writer unavailable after %d attempts: %v", k.RetryCount, err)
}
