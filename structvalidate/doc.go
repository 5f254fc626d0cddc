// Package structvalidate adapts github.com/go-playground/validator/v10 to the
// proxy.Validator interface.
//
// The value resolved from the request is decoded into a new T through a json
// round trip, so struct fields are matched by their json tags, and then checked
// against the "validate" struct tags of T. Query and path parameters are always
// strings; use string fields, or the ",string" json option, for them.
//
// Example:
//
//	type order struct {
//		Item     string `json:"item" validate:"required"`
//		Quantity int    `json:"quantity" validate:"gte=1"`
//	}
//
//	o, err := proxy.Validate[order](req, structvalidate.New[order](), proxy.SourceBody)
package structvalidate
