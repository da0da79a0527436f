package network_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/require"

	"github.com/stackmesa/backend-api/lib/constructs/network"
)

func newTestStack() awscdk.Stack {
	app := awscdk.NewApp(nil)
	return awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-1"),
		},
	})
}

func TestNetworkSynth(t *testing.T) {
	stack := newTestStack()

	net := network.NewNetwork(stack, "Network", &network.NetworkProps{
		MaxAzs:         2,
		NatGateways:    1,
		SubnetCidrMask: 24,
	})
	require.NotNil(t, net.Vpc)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::EC2::VPC"), jsii.Number(1))
	// one public + one private subnet per AZ
	template.ResourceCountIs(jsii.String("AWS::EC2::Subnet"), jsii.Number(4))
	template.ResourceCountIs(jsii.String("AWS::EC2::NatGateway"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::EC2::InternetGateway"), jsii.Number(1))
}

func TestNetworkSynth_NoNat(t *testing.T) {
	stack := newTestStack()

	network.NewNetwork(stack, "Network", &network.NetworkProps{
		MaxAzs:         2,
		NatGateways:    0,
		SubnetCidrMask: 24,
	})

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::EC2::NatGateway"), jsii.Number(0))
}

func TestNetwork_RejectsMoreNatThanAzs(t *testing.T) {
	stack := newTestStack()

	require.Panics(t, func() {
		network.NewNetwork(stack, "Network", &network.NetworkProps{
			MaxAzs:         1,
			NatGateways:    2,
			SubnetCidrMask: 24,
		})
	})
}
