package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/vibeflo/vibeflo/worker"
	"golang.org/x/sync/errgroup"
)

func init() {
	if err := godotenv.Load("vars.env"); err != nil {
		log.Fatal(err)
	}
}

func main() {
	application, err := worker.NewApplication()
	if err != nil {
		log.Fatal(err)
	}

	defer application.ConsumingClient.Close()

	themeArtRequestMSGBus, err := setupRabbitMQForStartup(application)
	if err != nil {
		log.Fatal(err)
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(10)

	for message := range themeArtRequestMSGBus {
		msg := message
		g.Go(func() error {
			if err := handleThemeArtRequest(application, msg); err != nil {
				log.Println("ERROR: ", err)
			}

			if err := msg.Ack(false); err != nil {
				log.Println("ERROR: ", err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
