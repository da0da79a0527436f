package capacity

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapplicationautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecspatterns"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type fargateBacking struct{}

// NewFargateBacking returns the serverless Backing.
func NewFargateBacking() Backing {
	return &fargateBacking{}
}

func (f *fargateBacking) Attach(scope constructs.Construct, id string, props *AttachProps) Result {
	svc := awsecspatterns.NewApplicationLoadBalancedFargateService(scope, jsii.String(id), &awsecspatterns.ApplicationLoadBalancedFargateServiceProps{
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
		Service:      svc.Service(),
		LoadBalancer: svc.LoadBalancer(),
		TargetGroup:  svc.TargetGroup(),
		Scaling:      scaling,
	}
}
