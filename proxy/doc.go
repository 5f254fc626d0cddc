// Package proxy provides utilities for writing aws lambda functions that act as
// aws api gateway proxy integrations. It normalizes both payload formats, the
// rest (1.0) events.APIGatewayProxyRequest and the http (2.0)
// events.APIGatewayV2HTTPRequest, behind a single Request interface and offers
// helpers for building events.APIGatewayProxyResponse values.
//
// Body parsing is lazy and cached per request. Duplicate query string keys are
// joined with commas, following the rules of each payload version.
//
// Example:
//
//	func handler(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
//		req, err := proxy.NewHTTPRequest(event)
//		if err != nil {
//			return proxy.Text(err.Error(), http.StatusBadRequest, nil), nil
//		}
//
//		name, err := req.InputOr("name", "world")
//		if err != nil {
//			return proxy.Text(err.Error(), http.StatusBadRequest, nil), nil
//		}
//
//		return proxy.JSON(map[string]any{"hello": name}, http.StatusOK, nil)
//	}
//
// The package does not route requests and never inspects authorizer claims.
package proxy
