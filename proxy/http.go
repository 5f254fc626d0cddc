package proxy

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// HTTPRequest implements Request for payload format 2.0 events, as sent by
// api gateway http apis.
type HTTPRequest struct {
	request
	event events.APIGatewayV2HTTPRequest
	query joinedQuery
}

// NewHTTPRequest returns an HTTPRequest wrapping event. It fails with
// ErrUnsupportedEvent unless the event is a payload 2.0 event.
//
// The raw query string is parsed up front since the gateway provided query
// parameters lose repeated keys.
func NewHTTPRequest(event events.APIGatewayV2HTTPRequest) (*HTTPRequest, error) {
	if _, err := DetectHTTP(event); err != nil {
		return nil, errors.Wrap(err, "failed creating http request")
	}

	r := &HTTPRequest{
		event: event,
		query: parseJoinedQuery(event.RawQueryString),
	}
	r.request = request{
		lookups:         r,
		body:            event.Body,
		isBase64Encoded: event.IsBase64Encoded,
		pathParameters:  event.PathParameters,
		queryParameters: event.QueryStringParameters,
		timeEpoch:       event.RequestContext.TimeEpoch,
	}

	return r, nil
}

// Event returns the wrapped event.
func (r *HTTPRequest) Event() events.APIGatewayV2HTTPRequest {
	return r.event
}

// QueryKeys returns the keys of the raw query string in the order they first
// appear.
func (r *HTTPRequest) QueryKeys() []string {
	return append([]string(nil), r.query.keys...)
}

func (r *HTTPRequest) Kind() Kind {
	return KindHTTP
}

func (r *HTTPRequest) Method() string {
	return r.event.RequestContext.HTTP.Method
}

func (r *HTTPRequest) Path() string {
	return r.event.RawPath
}

func (r *HTTPRequest) Cookies() []string {
	return r.event.Cookies
}

func (r *HTTPRequest) SourceIP() string {
	return r.event.RequestContext.HTTP.SourceIP
}

func (r *HTTPRequest) RequestID() string {
	return r.event.RequestContext.RequestID
}

func (r *HTTPRequest) Stage() string {
	return r.event.RequestContext.Stage
}

func (r *HTTPRequest) Authorizer() interface{} {
	if r.event.RequestContext.Authorizer == nil {
		return nil
	}

	return r.event.RequestContext.Authorizer
}

func (r *HTTPRequest) lookupQuery(key string) (string, bool) {
	if value, ok := r.query.values[key]; ok {
		return value, true
	}

	value, ok := r.event.QueryStringParameters[key]
	return value, ok
}

func (r *HTTPRequest) lookupHeader(name string) (string, bool) {
	return foldLookup(r.event.Headers, name)
}
