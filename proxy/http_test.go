package proxy

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPRequest(t *testing.T) {
	event := testHTTPEvent("DELETE", "/yolo")

	r, err := NewHTTPRequest(event)
	require.NoError(t, err)

	assert.Equal(t, KindHTTP, r.Kind())
	assert.Equal(t, "DELETE", r.Method())
	assert.Equal(t, "/yolo", r.Path())
	assert.Equal(t, event, r.Event())
}

func TestNewHTTPRequest_unsupported(t *testing.T) {
	cases := []events.APIGatewayV2HTTPRequest{
		{},
		{Version: "1.0"},
		{RawQueryString: "a=b"},
	}

	for _, c := range cases {
		r, err := NewHTTPRequest(c)

		assert.Nil(t, r)
		assert.True(t, errors.Is(err, ErrUnsupportedEvent))
	}
}

func TestHTTPRequest_QueryStr(t *testing.T) {
	event := testHTTPEvent("GET", "/search")
	event.RawQueryString = "filter=one&filter=two&single=only&encoded=a%20b&plus=c+d&bare&filter=three"
	event.QueryStringParameters = map[string]string{
		"filter":   "one,two,three",
		"single":   "only",
		"fallback": "gateway",
	}

	r, err := NewHTTPRequest(event)
	require.NoError(t, err)

	cases := []struct {
		key      string
		expected string
		found    bool
	}{
		{"filter", "one,two,three", true},
		{"single", "only", true},
		{"encoded", "a b", true},
		{"plus", "c d", true},
		{"bare", "", true},
		{"fallback", "gateway", true},
		{"missing", "", false},
	}

	for _, c := range cases {
		actual, found := r.QueryStr(c.key)

		assert.Equal(t, c.expected, actual, c.key)
		assert.Equal(t, c.found, found, c.key)
	}

	assert.Equal(t, []string{"filter", "single", "encoded", "plus", "bare"}, r.QueryKeys())
	assert.Equal(t, "n/a", r.QueryStrOr("missing", "n/a"))
}

func TestHTTPRequest_QueryStr_emptyRaw(t *testing.T) {
	event := testHTTPEvent("GET", "/search")
	event.QueryStringParameters = map[string]string{"a": "1"}

	r, err := NewHTTPRequest(event)
	require.NoError(t, err)

	assert.Equal(t, "1", r.QueryStrOr("a", ""))
	assert.Empty(t, r.QueryKeys())
}

func TestHTTPRequest_Header(t *testing.T) {
	event := testHTTPEvent("GET", "/yolo")
	event.Headers = map[string]string{
		"x-lower": "lower",
		"X-Mixed": "mixed",
	}

	r, err := NewHTTPRequest(event)
	require.NoError(t, err)

	cases := []struct {
		name     string
		expected string
		found    bool
	}{
		{"x-lower", "lower", true},
		{"X-LOWER", "lower", true},
		{"x-mixed", "mixed", true},
		{"x-missing", "", false},
	}

	for _, c := range cases {
		actual, found := r.Header(c.name)

		assert.Equal(t, c.expected, actual, c.name)
		assert.Equal(t, c.found, found, c.name)
	}
}

func TestHTTPRequest_dummy(t *testing.T) {
	r, err := NewHTTPRequest(dummyAPIGatewayV2HTTPRequest("http-form"))
	require.NoError(t, err)

	assert.Equal(t, "POST", r.Method())
	assert.Equal(t, "/colors", r.Path())
	assert.Equal(t, "warm", r.PathParamOr("palette", ""))
	assert.Equal(t, "one,two", r.QueryStrOr("filter", ""))
	assert.Equal(t, "only", r.QueryStrOr("single", ""))
	assert.Equal(t, []string{"session=abc", "theme=dark"}, r.Cookies())
	assert.Equal(t, "198.51.100.4", r.SourceIP())
	assert.Equal(t, "JKJaXmPLvHcESHA=", r.RequestID())
	assert.Equal(t, "$default", r.Stage())
	assert.Nil(t, r.Authorizer())

	epoch, ok := r.RequestTimeEpoch()
	assert.True(t, ok)
	assert.Equal(t, int64(1583817383220), epoch)

	color, err := r.InputOr("color", nil)
	assert.NoError(t, err)
	assert.Equal(t, "blue", color)

	single, err := r.InputOr("single", nil)
	assert.NoError(t, err)
	assert.Equal(t, "one", single)
}

func TestHTTPRequest_Authorizer(t *testing.T) {
	event := testHTTPEvent("GET", "/yolo")
	event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
		JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{
			Claims: map[string]string{"sub": "user-1"},
		},
	}

	r, err := NewHTTPRequest(event)
	require.NoError(t, err)

	assert.Equal(t, event.RequestContext.Authorizer, r.Authorizer())
}

func TestHTTPRequest_Header_caseCollision(t *testing.T) {
	event := testHTTPEvent("POST", "/yolo")
	event.Headers = map[string]string{
		"Content-Type": "application/json",
		"content-type": "text/plain",
		"X-Dup":        "mixed",
		"X-DUP":        "upper",
	}

	r, err := NewHTTPRequest(event)
	require.NoError(t, err)

	cases := []struct {
		name     string
		expected string
	}{
		{"Content-Type", "text/plain"},
		{"content-type", "text/plain"},
		{"CONTENT-TYPE", "text/plain"},
		{"x-dup", "upper"},
		{"X-Dup", "upper"},
	}

	for i := 0; i < 20; i++ {
		for _, c := range cases {
			actual, found := r.Header(c.name)

			assert.True(t, found, c.name)
			assert.Equal(t, c.expected, actual, c.name)
		}
	}
}
