// Package capacity provisions the load-balanced container service on one of
// the supported capacity modes. Both modes produce the same surface (an ALB
// in front of an ECS service with a scalable task count); only the backing
// compute differs.
package capacity

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
)

// AttachProps carries everything a backing needs to run the workload: the
// cluster, the image, the service sizing, and the roles/logging shared by
// both modes. Plain ints here; backings convert for the CDK API.
type AttachProps struct {
	Cluster awsecs.Cluster
	Image   awsecs.ContainerImage

	CPU                int
	MemoryMiB          int
	DesiredCount       int
	ContainerPort      int
	PublicLoadBalancer bool

	// Scaling bounds for the task count; policies are attached by the
	// caller through Result.Scaling.
	MinCapacity int
	MaxCapacity int

	Environment   *map[string]*string
	TaskRole      awsiam.IRole
	ExecutionRole awsiam.IRole
	LogDriver     awsecs.LogDriver
}

// Result hands back the provisioned service, its load balancer and target
// group, and the scalable target that scaling policies hang off.
type Result struct {
	Service      awsecs.IBaseService
	LoadBalancer awselasticloadbalancingv2.ApplicationLoadBalancer
	TargetGroup  awselasticloadbalancingv2.ApplicationTargetGroup
	Scaling      awsecs.ScalableTaskCount

	// AutoScalingGroup is set only for the EC2 kind.
	AutoScalingGroup awsautoscaling.AutoScalingGroup
}

// Backing provisions the load-balanced service on a specific capacity mode.
type Backing interface {
	Attach(scope constructs.Construct, id string, props *AttachProps) Result
}

// NewBacking returns the Backing implementation for kind.
func NewBacking(kind Kind) (Backing, error) {
	switch kind {
	case KindFargate:
		return NewFargateBacking(), nil
	case KindEC2:
		return NewEc2Backing(), nil
	default:
		return nil, fmt.Errorf("no backing for capacity kind %q", kind)
	}
}
