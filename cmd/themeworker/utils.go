package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vibeflo/vibeflo/models"
	"github.com/vibeflo/vibeflo/rabbit"
	"github.com/vibeflo/vibeflo/worker"
)

func setupRabbitMQForStartup(application *worker.Application) (<-chan amqp.Delivery, error) {
	if err := application.ConsumingClient.CreateBinding(
		worker.ThemeArtRequestQueue,
		worker.ThemeArtRequestQueue,
		worker.ThemeArtExchange,
	); err != nil {
		return nil, err
	}

	return application.ConsumingClient.Consume(worker.ThemeArtRequestQueue, "theme-art-service", false)
}

func handleThemeArtRequest(application *worker.Application, msg amqp.Delivery) error {
	// Replies go out on a fresh channel so concurrent jobs don't share one.
	publishingClient, err := rabbit.NewClient(application.PublishingConn)
	if err != nil {
		return err
	}
	defer publishingClient.Close()

	req := models.ThemeArtRequest{}
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	response, err := application.Service.Process(ctx, req)
	if err != nil {
		log.Println("ERROR: THEME ART: ", err)
		response = &models.ThemeArtResponse{
			ThemeID: req.ThemeID,
			Success: false,
			Error:   err.Error(),
		}
	}

	body, err := json.Marshal(*response)
	if err != nil {
		return err
	}

	return publishingClient.Send(context.Background(), worker.ThemeArtExchange, msg.ReplyTo, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}
