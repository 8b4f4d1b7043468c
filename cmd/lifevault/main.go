package main

import (
	"context"
	"log"
	"os"

	"github.com/evzhukov/lifevault/internal/buildinfo"
	"github.com/evzhukov/lifevault/internal/cli"
	"github.com/evzhukov/lifevault/internal/config"
	"github.com/evzhukov/lifevault/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
