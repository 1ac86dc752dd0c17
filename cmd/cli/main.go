package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/edupilot/internal/client/cli"
	"github.com/dmitrijs2005/edupilot/internal/client/config"
	"github.com/dmitrijs2005/edupilot/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, "warn")

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
