package database

import (
	"fmt"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// RabbitRepo definition rabbit repo
type RabbitRepo interface {
	GetRabbit() *amqp.Channel
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type rabbitRepo struct {
	channel *amqp.Channel
}

// NewRabbitRepository create a RabbitRepository
func NewRabbitRepository(db *amqp.Channel) RabbitRepo {
	return &rabbitRepo{channel: db}
}

// ConnectRabbitMQWithRetry dials RabbitMQ with retry.
func ConnectRabbitMQWithRetry(d Connection) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error

	for attempt := 1; attempt <= d.RetryCount; attempt++ {
		conn, err = amqp.Dial(d.ConnectStr)
		if err == nil {
			log.Printf("RabbitMQ[%s] connected (attempt %d)", d.ConnectStr, attempt)
			return conn, nil
		}

		log.Printf("RabbitMQ[%s] connect failed (attempt %d/%d): %v", d.ConnectStr, attempt, d.RetryCount, err)
		time.Sleep(d.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("RabbitMQ[%s] unavailable after %d attempts: %v", d.ConnectStr, d.RetryCount, err)
}

// GetRabbitMQChannelWithRetry opens a channel on an existing connection with retry.
func GetRabbitMQChannelWithRetry(conn *amqp.Connection, maxRetries int, baseDelay time.Duration) (*amqp.Channel, error) {
	var ch *amqp.Channel
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		ch, err = conn.Channel()
		if err == nil {
			return ch, nil
		}

		log.Printf("RabbitMQ channel failed (attempt %d/%d): %v", attempt, maxRetries, err)
		time.Sleep(baseDelay * time.Second)
	}

	return nil, fmt.Errorf("RabbitMQ channel unavailable after %d attempts: %v", maxRetries, err)
}

func (r *rabbitRepo) GetRabbit() *amqp.Channel {
	return r.channel
}

func (r *rabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return r.channel.Publish(exchange, key, mandatory, immediate, msg)
}
