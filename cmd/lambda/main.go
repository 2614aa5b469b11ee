package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dot2archimate/converter/internal/convert"
	"github.com/dot2archimate/converter/internal/result"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string `json:"body"` // DOT source (raw or base64 if isBase64)
	IsBase64 bool   `json:"isBase64,omitempty"`
}

// LambdaResponse is returned to the client (API Gateway).
type LambdaResponse struct {
	StatusCode int              `json:"statusCode"`
	Success    bool             `json:"success"`
	Errors     []result.Error   `json:"errors,omitempty"`
	Warnings   []result.Warning `json:"warnings,omitempty"`
	XML        string           `json:"xml,omitempty"` // ArchiMate XML, base64
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration
// (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: 200}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			out.StatusCode = 400
			out.Errors = []result.Error{{
				Type: "invalid_input", Severity: "error",
				Message: "invalid base64 body: " + err.Error(),
			}}
			return wrap(out), nil
		}
		body = string(dec)
	}

	res := convert.Convert(body, nil)
	out.Success = res.Success
	out.Errors = res.Errors
	out.Warnings = res.Warnings
	if res.Success {
		out.XML = base64.StdEncoding.EncodeToString(res.XML)
	} else {
		out.StatusCode = 422
	}
	return wrap(out), nil
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}
