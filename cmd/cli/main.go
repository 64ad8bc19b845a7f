package main

import (
	"context"
	"log"

	"github.com/avoronov/blogkeeper/internal/cli"
	"github.com/avoronov/blogkeeper/internal/config"
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
