package structvalidate

import (
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prognoshealth/apigwutils/proxy"
)

type order struct {
	Item     string `json:"item" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
	Address  struct {
		Zip string `json:"zip" validate:"omitempty,len=5"`
	} `json:"address"`
}

type search struct {
	Term  string `json:"q" validate:"required"`
	Limit string `json:"limit" validate:"omitempty,numeric"`
}

func jsonRequest(t *testing.T, body string) proxy.Request {
	r, err := proxy.NewHTTPRequest(events.APIGatewayV2HTTPRequest{
		Version: "2.0",
		RawPath: "/orders",
		Headers: map[string]string{"content-type": "application/json"},
		Body:    body,
	})
	require.NoError(t, err)

	return r
}

func TestValidator_Validate(t *testing.T) {
	r := jsonRequest(t, `{"item":"apple","quantity":3,"address":{"zip":"12345"},"extra":true}`)

	out, err := proxy.Validate[order](r, New[order](), proxy.SourceBody)

	assert.NoError(t, err)
	assert.Equal(t, "apple", out.Item)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, "12345", out.Address.Zip)
}

func TestValidator_Validate_issues(t *testing.T) {
	r := jsonRequest(t, `{"quantity":0,"address":{"zip":"123"}}`)

	_, err := proxy.Validate[order](r, New[order](), proxy.SourceBody)

	var verr *proxy.ValidationError
	require.True(t, errors.As(err, &verr))

	expected := []Issue{
		{Field: "item", Rule: "required", Got: ""},
		{Field: "quantity", Rule: "gte=1", Got: 0},
		{Field: "address.zip", Rule: "len=5", Got: "123"},
	}

	assert.Equal(t, expected, verr.Details)
	assert.Equal(t, `item failed "required"; quantity failed "gte=1"; address.zip failed "len=5"`, verr.Reason)
}

func TestValidator_Validate_typeMismatch(t *testing.T) {
	r := jsonRequest(t, `{"item":"apple","quantity":"three"}`)

	_, err := proxy.Validate[order](r, New[order](), proxy.SourceBody)

	var verr *proxy.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []Issue{{Field: "quantity", Rule: "type=int", Got: "string"}}, verr.Details)
}

func TestValidator_Validate_query(t *testing.T) {
	cases := []struct {
		query string
		valid bool
	}{
		{"q=boots&limit=10", true},
		{"q=boots", true},
		{"limit=10", false},
		{"q=boots&limit=ten", false},
	}

	for _, c := range cases {
		r, err := proxy.NewHTTPRequest(events.APIGatewayV2HTTPRequest{
			Version:               "2.0",
			RawPath:               "/search",
			QueryStringParameters: queryMap(c.query),
		})
		require.NoError(t, err)

		_, err = proxy.Validate[search](r, New[search](), proxy.SourceQuery)

		if c.valid {
			assert.NoError(t, err, c.query)
		} else {
			var verr *proxy.ValidationError
			assert.True(t, errors.As(err, &verr), c.query)
		}
	}
}

func TestValidator_Validate_notStruct(t *testing.T) {
	r := jsonRequest(t, `"just text"`)

	_, err := proxy.Validate[string](r, New[string](), proxy.SourceBody)

	// non validation failures are still reported as validation errors
	var verr *proxy.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestValidator_Engine(t *testing.T) {
	v := New[order]()
	assert.NotNil(t, v.Engine())
}

func queryMap(raw string) map[string]string {
	m := map[string]string{}
	for _, pair := range strings.Split(raw, "&") {
		key, value, _ := strings.Cut(pair, "=")
		m[key] = value
	}

	return m
}
