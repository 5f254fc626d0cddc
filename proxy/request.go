package proxy

import (
	"encoding/base64"
	"encoding/json"
	"maps"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// Request is the payload version independent view of an api gateway proxy
// event. Implementations wrap a single event, never modify it and are not safe
// for concurrent use.
type Request interface {
	// Kind returns the payload version of the wrapped event.
	Kind() Kind
	Method() string
	Path() string

	PathParam(key string) (string, bool)
	PathParamOr(key, def string) string

	// QueryStr returns the query string value for key. Repeated keys are
	// returned joined with commas.
	QueryStr(key string) (string, bool)
	QueryStrOr(key, def string) string
	// QueryStrs resolves every key like QueryStr, using def for missing ones.
	QueryStrs(keys []string, def string) map[string]string

	// Header looks up a header value ignoring the case of name.
	Header(name string) (string, bool)
	HeaderOr(name, def string) string

	// RawBody returns the body, decoded from base64 when the event is flagged
	// as such. An empty string means there is no body.
	RawBody() (string, error)
	// Body parses the body according to its content type on first use and
	// returns the cached result afterwards.
	Body() (ParsedBody, error)
	// JSONBody returns the decoded body only when it was sent as json.
	JSONBody() (interface{}, error)

	// Input looks up key in a json object or form body. Missing keys and json
	// nulls are reported as not found.
	Input(key string) (interface{}, bool, error)
	InputOr(key string, def interface{}) (interface{}, error)
	Inputs(keys []string, def interface{}) (map[string]interface{}, error)

	// RequestTimeEpoch returns the request time in epoch milliseconds.
	RequestTimeEpoch() (int64, bool)

	// Source resolves the data a Validator checks for the given source.
	Source(source Source) (interface{}, error)

	Cookies() []string
	SourceIP() string
	RequestID() string
	Stage() string
	// Authorizer returns the authorizer context of the event as is.
	Authorizer() interface{}
}

// lookups are the payload version specific primitives the shared request
// logic depends on.
type lookups interface {
	lookupHeader(name string) (string, bool)
	lookupQuery(key string) (string, bool)
}

// request implements the version independent parts of Request. Adapters embed
// it and supply the lookups.
type request struct {
	lookups lookups

	body             string
	isBase64Encoded  bool
	pathParameters   map[string]string
	queryParameters  map[string]string
	timeEpoch        int64
	requestTimeEpoch int64

	parsed *ParsedBody
}

func (r *request) PathParam(key string) (string, bool) {
	value, ok := r.pathParameters[key]
	return value, ok
}

func (r *request) PathParamOr(key, def string) string {
	if value, ok := r.PathParam(key); ok {
		return value
	}

	return def
}

func (r *request) QueryStr(key string) (string, bool) {
	return r.lookups.lookupQuery(key)
}

func (r *request) QueryStrOr(key, def string) string {
	if value, ok := r.QueryStr(key); ok {
		return value
	}

	return def
}

func (r *request) QueryStrs(keys []string, def string) map[string]string {
	values := make(map[string]string, len(keys))

	for _, key := range keys {
		values[key] = r.QueryStrOr(key, def)
	}

	return values
}

func (r *request) Header(name string) (string, bool) {
	return r.lookups.lookupHeader(strings.ToLower(name))
}

func (r *request) HeaderOr(name, def string) string {
	if value, ok := r.Header(name); ok {
		return value
	}

	return def
}

func (r *request) RawBody() (string, error) {
	if r.body == "" {
		return "", nil
	}

	if !r.isBase64Encoded {
		return r.body, nil
	}

	b, err := base64.StdEncoding.DecodeString(r.body)
	if err != nil {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(r.body); rawErr == nil {
			return string(raw), nil
		}


		return "", &BodyParseError{
			Reason: errors.Wrap(err, "unable to decode base64 request body").Error(),
			Err:    err,
		}
	}

	return string(b), nil
}

// Body only caches successful parses; a failing body is parsed again, and
// fails again, on every call.
func (r *request) Body() (ParsedBody, error) {
	if r.parsed != nil {
		return *r.parsed, nil
	}

	raw, err := r.RawBody()
	if err != nil {
		return ParsedBody{}, err
	}

	contentType, _ := r.Header("content-type")

	parsed, err := parseBody(raw, contentType)
	if err != nil {
		return ParsedBody{}, err
	}

	r.parsed = &parsed
	return parsed, nil
}

func (r *request) JSONBody() (interface{}, error) {
	body, err := r.Body()
	if err != nil {
		return nil, err
	}

	if body.Kind != BodyJSON {
		return nil, nil
	}

	return body.JSON, nil
}

func (r *request) Input(key string) (interface{}, bool, error) {
	body, err := r.Body()
	if err != nil {
		return nil, false, err
	}

	switch body.Kind {
	case BodyJSON:
		object, ok := body.JSON.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}

		value, ok := object[key]
		if !ok || value == nil {
			return nil, false, nil
		}

		return value, true, nil

	case BodyForm:
		value, ok := body.Form[key]
		if !ok {
			return nil, false, nil
		}

		return value, true, nil
	}

	return nil, false, nil
}

func (r *request) InputOr(key string, def interface{}) (interface{}, error) {
	value, ok, err := r.Input(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return def, nil
	}

	return value, nil
}

func (r *request) Inputs(keys []string, def interface{}) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(keys))

	for _, key := range keys {
		value, err := r.InputOr(key, def)
		if err != nil {
			return nil, err
		}

		values[key] = value
	}

	return values, nil
}

// RequestTimeEpoch prefers the payload 2.0 timeEpoch over the payload 1.0
// requestTimeEpoch. A zero epoch is treated as absent.
func (r *request) RequestTimeEpoch() (int64, bool) {
	if r.timeEpoch != 0 {
		return r.timeEpoch, true
	}

	if r.requestTimeEpoch != 0 {
		return r.requestTimeEpoch, true
	}

	return 0, false
}

func (r *request) Source(source Source) (interface{}, error) {
	switch source {
	case SourceBody:
		return r.JSONBody()
	case SourceQuery:
		return cloneOrEmpty(r.queryParameters), nil
	case SourcePath:
		return cloneOrEmpty(r.pathParameters), nil
	default:
		return nil, errors.Errorf("unknown validation source %q", string(source))
	}
}

func cloneOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}

	return maps.Clone(m)
}

// ParseRequest detects the payload version of a raw json proxy event, decodes
// it and returns the matching Request implementation.
func ParseRequest(payload []byte) (Request, error) {
	kind, err := Detect(payload)
	if err != nil {
		return nil, err
	}

	if kind == KindHTTP {
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrapf(ErrUnsupportedEvent, "failed decoding %s event: %s", kind, err)
		}

		dropNulls(payload, event.Headers, "headers")
		dropNulls(payload, event.QueryStringParameters, "queryStringParameters")
		dropNulls(payload, event.PathParameters, "pathParameters")

		req, err := NewHTTPRequest(event)
		if err != nil {
			return nil, err
		}

		return req, nil
	}

	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.Wrapf(ErrUnsupportedEvent, "failed decoding %s event: %s", kind, err)
	}

	dropNulls(payload, event.Headers, "headers")
	dropNulls(payload, event.MultiValueHeaders, "multiValueHeaders")
	dropNulls(payload, event.QueryStringParameters, "queryStringParameters")
	dropNulls(payload, event.MultiValueQueryStringParameters, "multiValueQueryStringParameters")
	dropNulls(payload, event.PathParameters, "pathParameters")

	req, err := NewRESTRequest(event)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// dropNulls removes the entries of m whose value is null in the object found
// at key in payload, since decoding turns them into zero values.
func dropNulls[V any](payload []byte, m map[string]V, key string) {
	if len(m) == 0 {
		return
	}

	_ = jsonparser.ObjectEach(payload, func(name, _ []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType != jsonparser.Null {
			return nil
		}

		if unescaped, err := jsonparser.ParseString(name); err == nil {
			delete(m, unescaped)
		}

		return nil
	}, key)
}

// foldLookup finds name in m ignoring case. An exact match wins, then the
// lexically smallest case insensitive match.
func foldLookup[V any](m map[string]V, name string) (V, bool) {
	if value, ok := m[name]; ok {
		return value, true
	}

	var matches []string
	for key := range m {
		if strings.EqualFold(key, name) {
			matches = append(matches, key)
		}
	}

	if len(matches) == 0 {
		var zero V
		return zero, false
	}

	sort.Strings(matches)
	return m[matches[0]], true
}
