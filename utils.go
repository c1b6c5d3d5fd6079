package main

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vibeflo/vibeflo/app"
	"github.com/vibeflo/vibeflo/models"
)

func setupThemeArtRabbitMQForStartup(application *app.Application) (<-chan amqp.Delivery, error) {
	queue := "theme-art-response-" + application.RabbitMQInstanceID

	if err := application.ThemeArtResponseClient.CreateBinding(
		queue,
		queue,
		app.ThemeArtExchange,
	); err != nil {
		return nil, err
	}

	return application.ThemeArtResponseClient.Consume(queue, "vibeflo-"+application.RabbitMQInstanceID, false)
}

// handleThemeArtResponse persists the worker's result and forwards it to a
// waiting websocket, if any.
func handleThemeArtResponse(application *app.Application, msg amqp.Delivery) error {
	response := models.ThemeArtResponse{}

	if err := json.Unmarshal(msg.Body, &response); err != nil {
		return err
	}

	if response.Success {
		if err := application.CustomThemeStore.Update(map[string]any{
			"image_url": response.ImageURL,
			"image_key": response.ImageKey,
		}, "theme_id = ?", response.ThemeID); err != nil {
			return err
		}
	}

	application.DispatchThemeArt(response)

	return nil
}
