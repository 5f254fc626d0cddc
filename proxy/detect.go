package proxy

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// Kind identifies the api gateway payload version of a proxy event.
type Kind int

const (
	// KindREST is the payload format 1.0 used by rest apis.
	KindREST Kind = iota + 1
	// KindHTTP is the payload format 2.0 used by http apis.
	KindHTTP
)

const payloadVersionHTTP = "2.0"

func (k Kind) String() string {
	switch k {
	case KindREST:
		return "v1"
	case KindHTTP:
		return "v2"
	default:
		return "unknown"
	}
}

// discriminants holds the fields used to tell the payload versions apart. An
// empty string means the field is absent.
type discriminants struct {
	version string
	rawPath string
	method  string
	path    string
}

// classify checks the http discriminants before the rest ones since an event
// built to look like both must be treated as payload 2.0.
func (d discriminants) classify() (Kind, error) {
	if d.version == payloadVersionHTTP || d.rawPath != "" {
		return KindHTTP, nil
	}

	if d.method != "" && d.path != "" {
		return KindREST, nil
	}

	return 0, errors.Wrap(ErrUnsupportedEvent, "event has neither a 2.0 version, a rawPath nor an httpMethod and path")
}

// Detect classifies a raw json proxy event without decoding it completely.
func Detect(payload []byte) (Kind, error) {
	return discriminants{
		version: probeString(payload, "version"),
		rawPath: probeString(payload, "rawPath"),
		method:  probeString(payload, "httpMethod"),
		path:    probeString(payload, "path"),
	}.classify()
}

// DetectREST classifies a decoded payload 1.0 event.
func DetectREST(event events.APIGatewayProxyRequest) (Kind, error) {
	return discriminants{method: event.HTTPMethod, path: event.Path}.classify()
}

// DetectHTTP classifies a decoded payload 2.0 event.
func DetectHTTP(event events.APIGatewayV2HTTPRequest) (Kind, error) {
	return discriminants{version: event.Version, rawPath: event.RawPath}.classify()
}

// probeString returns the top level string at key, or an empty string when the
// key is missing, not a string or the payload is not json.
func probeString(payload []byte, key string) string {
	value, err := jsonparser.GetString(payload, key)
	if err != nil {
		return ""
	}

	return value
}
