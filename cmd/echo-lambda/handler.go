package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/apigwutils/lambdautils"
	"github.com/prognoshealth/apigwutils/proxy"
	"github.com/prognoshealth/apigwutils/structvalidate"
)

type echoQuery struct {
	Fields string `json:"fields"`
	Limit  string `json:"limit" validate:"omitempty,numeric"`
}

type echoResponse struct {
	Kind        string                 `json:"kind"`
	Method      string                 `json:"method"`
	Path        string                 `json:"path"`
	ContentType string                 `json:"contentType,omitempty"`
	Query       echoQuery              `json:"query"`
	Inputs      map[string]interface{} `json:"inputs,omitempty"`
	Body        interface{}            `json:"body,omitempty"`
	Epoch       int64                  `json:"epoch,omitempty"`
}

type errorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type handler struct {
	log    logrus.FieldLogger
	schema proxy.Validator[interface{}]
}

// Handle echoes the normalized request. Failures caused by the request are
// answered with a client error; only response encoding failures are returned.
func (h *handler) Handle(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	log := h.log.WithFields(lambdautils.GetInvocationMeta(ctx).Fields())

	req, err := proxy.ParseRequest(payload)
	if err != nil {
		log.WithError(err).Warn("rejected event")
		return proxy.Text(err.Error(), http.StatusBadRequest, nil), nil
	}

	log = log.WithFields(logrus.Fields{
		"kind":       req.Kind().String(),
		"method":     req.Method(),
		"path":       req.Path(),
		"request_id": req.RequestID(),
	})

	response, err := h.echo(req)
	if err != nil {
		log.WithError(err).Info("request failed")
		return failure(err)
	}

	log.Debug("request echoed")
	return proxy.JSON(response, http.StatusOK, nil)
}

func (h *handler) echo(req proxy.Request) (echoResponse, error) {
	query, err := proxy.Validate[echoQuery](req, structvalidate.New[echoQuery](), proxy.SourceQuery)
	if err != nil {
		return echoResponse{}, err
	}

	response := echoResponse{
		Kind:        req.Kind().String(),
		Method:      req.Method(),
		Path:        req.Path(),
		ContentType: req.HeaderOr("content-type", ""),
		Query:       query,
	}

	if h.schema != nil {
		response.Body, err = proxy.Validate(req, h.schema, proxy.SourceBody)
	} else {
		response.Body, err = req.JSONBody()
	}
	if err != nil {
		return echoResponse{}, err
	}

	if query.Fields != "" {
		response.Inputs, err = req.Inputs(splitFields(query.Fields), nil)
		if err != nil {
			return echoResponse{}, err
		}
	}

	if epoch, ok := req.RequestTimeEpoch(); ok {
		response.Epoch = epoch
	}

	return response, nil
}

func failure(err error) (events.APIGatewayProxyResponse, error) {
	var verr *proxy.ValidationError
	if errors.As(err, &verr) {
		return proxy.JSON(errorResponse{Error: verr.Reason, Details: verr.Details}, http.StatusUnprocessableEntity, nil)
	}

	var perr *proxy.BodyParseError
	if errors.As(err, &perr) {
		return proxy.JSON(errorResponse{Error: perr.Reason}, http.StatusBadRequest, nil)
	}

	return events.APIGatewayProxyResponse{}, err
}

func splitFields(fields string) []string {
	var keys []string
	for _, key := range strings.Split(fields, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}
