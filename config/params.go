package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type CDKParams struct {
	LogLevel awscdk.CfnParameter
}

func NewCDKParams(scope constructs.Construct) *CDKParams {
	logLevel := awscdk.NewCfnParameter(scope, jsii.String("ApiLogLevel"), &awscdk.CfnParameterProps{
		Type:          jsii.String("String"),
		Description:   jsii.String("Log level for the API container"),
		Default:       jsii.String("info"),
		AllowedValues: jsii.Strings("debug", "info", "warn", "error"),
	})

	return &CDKParams{
		LogLevel: logLevel,
	}
}
