package proxy

import (
	"encoding/json"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// BodyKind tags the variant held by a ParsedBody.
type BodyKind int

const (
	// BodyEmpty means the request carried no body.
	BodyEmpty BodyKind = iota
	// BodyJSON means the body was decoded from application/json.
	BodyJSON
	// BodyForm means the body was decoded from application/x-www-form-urlencoded.
	BodyForm
	// BodyText holds the raw body for every other content type.
	BodyText
)

func (k BodyKind) String() string {
	switch k {
	case BodyEmpty:
		return "empty"
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	case BodyText:
		return "text"
	default:
		return "unknown"
	}
}

// ParsedBody is the decoded request body. Only the field matching Kind is set.
type ParsedBody struct {
	Kind BodyKind
	JSON interface{}
	Form map[string]string
	Text string
}

// mediaType returns the lower cased media type of a content-type header value
// without its parameters.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// parseBody decodes raw according to the media type. A json decoding failure
// returns a BodyParseError carrying the decoder message.
func parseBody(raw, contentType string) (ParsedBody, error) {
	if raw == "" {
		return ParsedBody{Kind: BodyEmpty}, nil
	}

	switch mediaType(contentType) {
	case contentTypeJSON:
		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return ParsedBody{}, &BodyParseError{Reason: err.Error(), Err: err}
		}

		return ParsedBody{Kind: BodyJSON, JSON: value}, nil

	case contentTypeForm:
		return ParsedBody{Kind: BodyForm, Form: parseForm(raw)}, nil

	default:
		return ParsedBody{Kind: BodyText, Text: raw}, nil
	}
}
