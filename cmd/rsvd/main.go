package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; it only seeds RSVD_* variables
	_ = godotenv.Load()

	Execute()
}
