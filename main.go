package main

import (
	"github.com/theirongolddev/planbook/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()
	cmd.Execute()
}
