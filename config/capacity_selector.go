package config

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/stackmesa/backend-api/lib/constructs/capacity"
)

// CapacitySelector creates and parses the capacityType CFN parameter.
type CapacitySelector struct {
	Kind  capacity.Kind
	Param awscdk.CfnParameter
}

// NewCapacitySelector defines a CFN parameter 'capacityType' with allowed
// values, reads the context (if supplied) to set the *default*, and parses it
// into a Kind. Construct selection happens at synthesis, so the Kind comes
// from the context value, not from the parameter token.
func NewCapacitySelector(scope constructs.Construct) CapacitySelector {
	def := string(capacity.KindFargate) // fallback
	if ctx := scope.Node().TryGetContext(jsii.String("capacityType")); ctx != nil {
		if s, ok := ctx.(string); ok && s != "" {
			def = strings.ToLower(s) // normalise, ParseKind expects lower-case
		}
	}

	param := awscdk.NewCfnParameter(scope, jsii.String("capacityType"), &awscdk.CfnParameterProps{
		Type:          jsii.String("String"),
		Default:       jsii.String(def),
		AllowedValues: jsii.Strings(string(capacity.KindFargate), string(capacity.KindEC2)),
		Description:   jsii.String("Capacity mode backing the cluster (fargate | ec2)"),
	})

	kind, err := capacity.ParseKind(def)
	if err != nil {
		panic(fmt.Sprintf("capacityType context: %v", err))
	}
	return CapacitySelector{Kind: kind, Param: param}
}
