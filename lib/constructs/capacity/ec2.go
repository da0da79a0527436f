package capacity

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapplicationautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecspatterns"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type ec2Backing struct{}

// NewEc2Backing returns the instance-backed Backing. Tasks land on an
// auto-scaling group of t3.small instances joined to the cluster.
func NewEc2Backing() Backing {
	return &ec2Backing{}
}

func (e *ec2Backing) Attach(scope constructs.Construct, id string, props *AttachProps) Result {
	asg := props.Cluster.AddCapacity(jsii.String(id+"Capacity"), &awsecs.AddCapacityOptions{
		InstanceType: awsec2.InstanceType_Of(awsec2.InstanceClass_T3, awsec2.InstanceSize_SMALL),
		MinCapacity:  jsii.Number(float64(props.MinCapacity)),
		MaxCapacity:  jsii.Number(float64(props.MaxCapacity)),
	})

	svc := awsecspatterns.NewApplicationLoadBalancedEc2Service(scope, jsii.String(id), &awsecspatterns.ApplicationLoadBalancedEc2ServiceProps{
		Cluster:        props.Cluster,
		Cpu:            jsii.Number(float64(props.CPU)),
		MemoryLimitMiB: jsii.Number(float64(props.MemoryMiB)),
		DesiredCount:   jsii.Number(float64(props.DesiredCount)),
		TaskImageOptions: &awsecspatterns.ApplicationLoadBalancedTaskImageOptions{
			Image:         props.Image,
			ContainerPort: jsii.Number(float64(props.ContainerPort)),
			Environment:   props.Environment,
			LogDriver:     props.LogDriver,
			TaskRole:      props.TaskRole,
			ExecutionRole: props.ExecutionRole,
		},
		PublicLoadBalancer: jsii.Bool(props.PublicLoadBalancer),
	})

	scaling := svc.Service().AutoScaleTaskCount(&awsapplicationautoscaling.EnableScalingProps{
		MinCapacity: jsii.Number(float64(props.MinCapacity)),
		MaxCapacity: jsii.Number(float64(props.MaxCapacity)),
	})

	return Result{
		Service:          svc.Service(),
		LoadBalancer:     svc.LoadBalancer(),
		TargetGroup:      svc.TargetGroup(),
		Scaling:          scaling,
		AutoScalingGroup: asg,
	}
}
