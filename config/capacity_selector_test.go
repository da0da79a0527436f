package config_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/require"

	"github.com/stackmesa/backend-api/config"
	"github.com/stackmesa/backend-api/lib/constructs/capacity"
)

func selectorStack(context map[string]interface{}) awscdk.Stack {
	app := awscdk.NewApp(&awscdk.AppProps{Context: &context})
	return awscdk.NewStack(app, jsii.String("Test"), nil)
}

func TestNewCapacitySelector_Default(t *testing.T) {
	sel := config.NewCapacitySelector(selectorStack(nil))
	require.Equal(t, capacity.KindFargate, sel.Kind)
	require.NotNil(t, sel.Param)
}

func TestNewCapacitySelector_FromContext(t *testing.T) {
	// Context values are normalised, so mixed case still parses.
	sel := config.NewCapacitySelector(selectorStack(map[string]interface{}{"capacityType": "EC2"}))
	require.Equal(t, capacity.KindEC2, sel.Kind)
}

func TestNewCapacitySelector_Invalid(t *testing.T) {
	require.Panics(t, func() {
		config.NewCapacitySelector(selectorStack(map[string]interface{}{"capacityType": "lambda"}))
	})
}
