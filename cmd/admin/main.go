package main

import (
	"context"
	"log"
	"os"

	"github.com/JokeryEU/shoplistapp-server/internal/admin"
	"github.com/JokeryEU/shoplistapp-server/internal/server"
	"github.com/JokeryEU/shoplistapp-server/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.UsesMemoryStore() {
		log.Fatalf("admin accounts need a persistent database, got %q", cfg.DatabaseDSN)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := admin.NewApp(os.Stdin, os.Stdout, app.Users()).Run(ctx); err != nil {
		log.Printf("%v", err)
		app.Close()
		os.Exit(1)
	}
}
