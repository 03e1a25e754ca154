package main

import (
	"fmt"
	"log/slog"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/sagarc03/lakepath/config"
	"github.com/sagarc03/lakepath/lambda"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve the HTTP endpoints from AWS Lambda",
	Long: `Serve the same router as "serve" from an AWS Lambda function behind an
API Gateway proxy integration. This command only returns when the Lambda
runtime stops it.`,
	RunE: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	connector, cleanup, err := openConnector(ctx, cfg, cfg.Storage.Type)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer cleanup()

	handler, err := newHandler(cfg, connector)
	if err != nil {
		return err
	}

	slog.Info("starting lambda handler", "storage", cfg.Storage.Type)
	awslambda.StartWithOptions(lambda.NewHandler(handler.Router()), awslambda.WithContext(ctx))
	return nil
}
