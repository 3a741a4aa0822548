package main

import (
	"log"

	"roadweather-service/internal/roadweather"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	s := roadweather.New()
	s.Start()
}
