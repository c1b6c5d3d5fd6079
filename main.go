package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/vibeflo/vibeflo/app"
)

func init() {
	if err := godotenv.Load("vars.env"); err != nil {
		log.Fatal(err)
	}
}

func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatal(err)
	}

	themeArtRespMSGBus, err := setupThemeArtRabbitMQForStartup(application)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		for msg := range themeArtRespMSGBus {
			if err := handleThemeArtResponse(application, msg); err != nil {
				log.Println("ERROR: ", err)
			}

			if err := msg.Ack(false); err != nil {
				log.Println("ERROR: ", err)
			}
		}
	}()

	e := application.Router()

	log.Fatal(e.Start(os.Getenv("ADDR")))
}
