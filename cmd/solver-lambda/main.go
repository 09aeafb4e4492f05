// Command solver-lambda is the AWS Lambda entry point that solves mazes
// uploaded to S3. It is configured from the environment: TARGET_BUCKET,
// KEY_PREFIX, TABLE_NAME, STEP_LIMIT, LOG_LEVEL and LOG_FORMAT.
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
	"github.com/katalvlaran/mazerunner/trigger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.SolverFromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	// clients are built once per execution environment and reused
	stores, err := app.NewStores(ctx, cfg)
	if err != nil {
		logger.Error("Failed to create stores.", "error", err)
		os.Exit(1)
	}
	proc, err := app.NewProcessor(cfg, stores, nil)
	if err != nil {
		logger.Error("Failed to create processor.", "error", err)
		os.Exit(1)
	}
	logger.Info("Loaded configuration.", "target_bucket", cfg.TargetBucket, "key_prefix", cfg.KeyPrefix)

	h := trigger.NewS3Handler(proc)
	lambda.Start(func(ctx context.Context, ev events.S3Event) (trigger.Response, error) {
		return h.Handle(ctxlog.WithLogger(ctx, logger), ev)
	})
}
