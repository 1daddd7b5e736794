package main

import (
	"github.com/joho/godotenv"

	"github.com/robalobadob/hangman/apps/go-server/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
