package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

const (
	HeaderContentType = "Content-Type"
	HeaderLocation    = "Location"

	MIMEApplicationJSON = "application/json"
	MIMETextPlain       = "text/plain; charset=utf-8"
)

// JSON returns a response with body encoded as json. A zero status defaults to
// 200. Headers are merged over the json content type.
func JSON(body interface{}, status int, headers map[string]string) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrapf(err, "failed encoding %T response body", body)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusOr(status, http.StatusOK),
		Headers:    mergeHeaders(map[string]string{HeaderContentType: MIMEApplicationJSON}, headers),
		Body:       string(b),
	}, nil
}

// Text returns a plain text response. A zero status defaults to 200. Headers
// are merged over the text content type.
func Text(body string, status int, headers map[string]string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusOr(status, http.StatusOK),
		Headers:    mergeHeaders(map[string]string{HeaderContentType: MIMETextPlain}, headers),
		Body:       body,
	}
}

// NoContent returns an empty 204 response with headers passed through as is.
func NoContent(headers map[string]string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNoContent,
		Headers:    headers,
	}
}

// Redirect returns an empty response pointing at location. A zero status
// defaults to 302. Headers are merged over the location header, so an
// explicit Location header wins.
func Redirect(location string, status int, headers map[string]string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusOr(status, http.StatusFound),
		Headers:    mergeHeaders(map[string]string{HeaderLocation: location}, headers),
	}
}

func statusOr(status, def int) int {
	if status == 0 {
		return def
	}

	return status
}

func mergeHeaders(base, extra map[string]string) map[string]string {
	for key, value := range extra {
		base[key] = value
	}

	return base
}
