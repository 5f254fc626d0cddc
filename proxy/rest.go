package proxy

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// RESTRequest implements Request for payload format 1.0 events, as sent by
// api gateway rest apis.
type RESTRequest struct {
	request
	event events.APIGatewayProxyRequest
}

// NewRESTRequest returns a RESTRequest wrapping event. It fails with
// ErrUnsupportedEvent unless the event is a payload 1.0 event.
func NewRESTRequest(event events.APIGatewayProxyRequest) (*RESTRequest, error) {
	if _, err := DetectREST(event); err != nil {
		return nil, errors.Wrap(err, "failed creating rest request")
	}

	r := &RESTRequest{event: event}
	r.request = request{
		lookups:          r,
		body:             event.Body,
		isBase64Encoded:  event.IsBase64Encoded,
		pathParameters:   event.PathParameters,
		queryParameters:  event.QueryStringParameters,
		requestTimeEpoch: event.RequestContext.RequestTimeEpoch,
	}

	return r, nil
}

// Event returns the wrapped event.
func (r *RESTRequest) Event() events.APIGatewayProxyRequest {
	return r.event
}

func (r *RESTRequest) Kind() Kind {
	return KindREST
}

func (r *RESTRequest) Method() string {
	return r.event.HTTPMethod
}

func (r *RESTRequest) Path() string {
	return r.event.Path
}

// Cookies splits the cookie header, payload 1.0 events have no cookies field.
func (r *RESTRequest) Cookies() []string {
	header, ok := r.Header("cookie")
	if !ok {
		return nil
	}

	var cookies []string
	for _, cookie := range strings.Split(header, ";") {
		if cookie = strings.TrimSpace(cookie); cookie != "" {
			cookies = append(cookies, cookie)
		}
	}

	return cookies
}

func (r *RESTRequest) SourceIP() string {
	return r.event.RequestContext.Identity.SourceIP
}

func (r *RESTRequest) RequestID() string {
	return r.event.RequestContext.RequestID
}

func (r *RESTRequest) Stage() string {
	return r.event.RequestContext.Stage
}

func (r *RESTRequest) Authorizer() interface{} {
	if r.event.RequestContext.Authorizer == nil {
		return nil
	}

	return r.event.RequestContext.Authorizer
}

// lookupQuery prefers the multi value parameters, joining repeated values with
// commas, and falls back to the single value parameters.
func (r *RESTRequest) lookupQuery(key string) (string, bool) {
	if values := r.event.MultiValueQueryStringParameters[key]; len(values) > 0 {
		return strings.Join(values, ","), true
	}

	value, ok := r.event.QueryStringParameters[key]
	return value, ok
}

// lookupHeader searches the single value headers first. A match in the multi
// value headers returns its first value only.
func (r *RESTRequest) lookupHeader(name string) (string, bool) {
	if value, ok := foldLookup(r.event.Headers, name); ok {
		return value, true
	}

	values, ok := foldLookup(r.event.MultiValueHeaders, name)
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}
