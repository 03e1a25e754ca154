// Package lambda serves the lakepath router from AWS Lambda behind an API
// Gateway REST (v1) proxy integration.
package lambda

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// Handler is the function signature expected by lambda.Start.
type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewHandler adapts h to API Gateway proxy events. An event that cannot be
// turned into an *http.Request is answered with 400 instead of failing the
// invocation.
func NewHandler(h http.Handler) Handler {
	adapter := httpadapter.New(h)

	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := adapter.ProxyWithContext(ctx, req)
		if err != nil {
			slog.Error("failed to proxy lambda request", "error", err, "request_id", req.RequestContext.RequestID, "path", req.Path)
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error":"invalid request"}`,
			}, nil
		}
		return resp, nil
	}
}
