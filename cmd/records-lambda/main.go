// Command records-lambda serves the solve metadata API behind an API
// Gateway proxy integration. TABLE_NAME selects the DynamoDB table.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/katalvlaran/mazerunner/config"
	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/internal/app"
	"github.com/katalvlaran/mazerunner/records"
)

func main() {
	ctx := context.Background()

	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	stores, err := app.NewStores(ctx, cfg)
	if err != nil {
		logger.Error("Failed to create stores.", "error", err)
		os.Exit(1)
	}

	h := records.NewHandler(stores.Records)
	lambda.Start(func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return h.HandleAPIGateway(ctxlog.WithLogger(ctx, logger), ev)
	})
}
