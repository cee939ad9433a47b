// BlindCal server entry point
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/blindcal/blindcal-go/internal/application/startup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}

	if err := startup.Initialize(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
