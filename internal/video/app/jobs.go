package app

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"

	"video_share_service/internal/video/domain"
	"video_share_service/pkg/database"
)

type rabbitJobQueue struct {
	rabbit database.RabbitRepo
}

// NewRabbitJobQueue declares the thumbnail queue and returns a
// publisher bound to it.
func NewRabbitJobQueue(rabbit database.RabbitRepo) (JobQueue, error) {
	_, err := rabbit.GetRabbit().QueueDeclare(
		domain.ThumbnailQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &rabbitJobQueue{rabbit: rabbit}, nil
}

func (q *rabbitJobQueue) EnqueueThumbnail(_ context.Context, job domain.ThumbnailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rabbit.Publish("", domain.ThumbnailQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
