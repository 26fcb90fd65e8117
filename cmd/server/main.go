package main

import (
	"context"
	"log"

	"github.com/JokeryEU/shoplistapp-server/internal/server"
	"github.com/JokeryEU/shoplistapp-server/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
