// Package lambdautils exposes details about the running lambda invocation.
package lambdautils

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

// InvocationMeta holds details about the current function and invocation.
type InvocationMeta struct {
	FunctionName       string
	FunctionVersion    string
	LogGroupName       string
	LogStreamName      string
	MemoryLimitInMB    int
	AwsRequestID       string
	InvokedFunctionArn string
}

// GetInvocationMeta returns InvocationMeta extracted from the lambda
// environment and, when present, the lambda context carried by ctx.
func GetInvocationMeta(ctx context.Context) InvocationMeta {
	meta := InvocationMeta{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		meta.AwsRequestID = lc.AwsRequestID
		meta.InvokedFunctionArn = lc.InvokedFunctionArn
	}

	return meta
}

// Fields returns the non empty details as logrus fields.
func (m InvocationMeta) Fields() logrus.Fields {
	fields := logrus.Fields{}

	set := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}

	set("function", m.FunctionName)
	set("version", m.FunctionVersion)
	set("log_group", m.LogGroupName)
	set("log_stream", m.LogStreamName)
	set("aws_request_id", m.AwsRequestID)
	set("function_arn", m.InvokedFunctionArn)

	if m.MemoryLimitInMB != 0 {
		fields["memory_mb"] = m.MemoryLimitInMB
	}

	return fields
}
