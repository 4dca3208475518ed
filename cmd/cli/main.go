package main

import (
	"context"
	"log"

	"predmarket-cli/internal/cli"
	"predmarket-cli/internal/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())

}
