// Command echo-lambda is an api gateway proxy integration that echoes back what
// it reads from either payload version.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/apigwutils/schemavalidate"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed loading config")
	}

	h := &handler{log: newLogger(cfg)}

	if cfg.SchemaPath != "" {
		h.schema, err = schemavalidate.NewFromFile(cfg.SchemaPath)
		if err != nil {
			h.log.WithError(err).Fatal("failed loading body schema")
		}
	}

	lambda.Start(h.Handle)
}
