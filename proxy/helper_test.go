package proxy

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
)

func testRESTEvent(method, path string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: method,
		Path:       path,
		Headers:    map[string]string{},
	}
}

func testHTTPEvent(method, path string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		Version: "2.0",
		RawPath: path,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
			},
		},
		Headers: map[string]string{},
	}
}

func dummyPayload(name string) []byte {
	content, err := os.ReadFile(fmt.Sprintf("testdata/dummy/%s.json", name))
	if err != nil {
		log.Fatal(err)
	}

	return content
}

func dummy(v interface{}, name string) interface{} {
	if err := json.Unmarshal(dummyPayload(name), v); err != nil {
		log.Fatal(err)
	}

	return v
}

func dummyAPIGatewayProxyRequest(name string) events.APIGatewayProxyRequest {
	return *dummy(&events.APIGatewayProxyRequest{}, name).(*events.APIGatewayProxyRequest)
}

func dummyAPIGatewayV2HTTPRequest(name string) events.APIGatewayV2HTTPRequest {
	return *dummy(&events.APIGatewayV2HTTPRequest{}, name).(*events.APIGatewayV2HTTPRequest)
}

// stubValidator records the value it was called with.
type stubValidator struct {
	got interface{}
	err error
}

func (s *stubValidator) Validate(value interface{}) (interface{}, error) {
	s.got = value
	if s.err != nil {
		return nil, s.err
	}

	return value, nil
}
