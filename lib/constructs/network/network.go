// Package network owns the isolated virtual network the service runs in:
// public subnets for the load balancer, private-with-egress subnets for the
// tasks, NAT for their outbound traffic.
package network

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type NetworkProps struct {
	MaxAzs         int
	NatGateways    int
	SubnetCidrMask int
}

type Network struct {
	constructs.Construct

	Vpc awsec2.Vpc
}

// NewNetwork provisions the VPC with one public and one private subnet group
// across MaxAzs availability zones.
func NewNetwork(scope constructs.Construct, id string, props *NetworkProps) *Network {
	if props.NatGateways > props.MaxAzs {
		panic(fmt.Sprintf("network: %d NAT gateways cannot span %d availability zones", props.NatGateways, props.MaxAzs))
	}

	node := constructs.NewConstruct(scope, jsii.String(id))

	vpc := awsec2.NewVpc(node, jsii.String("Vpc"), &awsec2.VpcProps{
		MaxAzs:      jsii.Number(float64(props.MaxAzs)),
		NatGateways: jsii.Number(float64(props.NatGateways)),
		SubnetConfiguration: &[]*awsec2.SubnetConfiguration{
			{
				Name:       jsii.String("public"),
				SubnetType: awsec2.SubnetType_PUBLIC,
				CidrMask:   jsii.Number(float64(props.SubnetCidrMask)),
			},
			{
				Name:       jsii.String("private"),
				SubnetType: awsec2.SubnetType_PRIVATE_WITH_EGRESS,
				CidrMask:   jsii.Number(float64(props.SubnetCidrMask)),
			},
		},
	})

	return &Network{Construct: node, Vpc: vpc}
}
