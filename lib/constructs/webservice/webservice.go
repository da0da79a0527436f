// Package webservice composes the compute side of the topology: the ECS
// cluster, the load-balanced service on the selected capacity mode, its
// scaling policies, container logging, and the ALB access-log bucket.
package webservice

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/stackmesa/backend-api/config"
	"github.com/stackmesa/backend-api/lib/constructs/capacity"
)

type WebServiceProps struct {
	Vpc         awsec2.IVpc
	Kind        capacity.Kind
	Image       awsecs.ContainerImage
	ClusterName string
	Stage       string

	Service     config.ServiceSpec
	Scaling     config.ScalingSpec
	HealthCheck config.HealthCheckSpec

	// Environment is merged over the defaults the construct sets for the
	// container (listen address).
	Environment map[string]*string
}

type WebService struct {
	constructs.Construct

	Cluster      awsecs.Cluster
	Service      awsecs.IBaseService
	LoadBalancer awselasticloadbalancingv2.ApplicationLoadBalancer
	AccessLogs   awss3.Bucket
}

// NewWebService provisions the cluster and the load-balanced service, wires
// the health check and access logs, and attaches the scaling policies.
func NewWebService(scope constructs.Construct, id string, props *WebServiceProps) *WebService {
	node := constructs.NewConstruct(scope, jsii.String(id))

	cluster := awsecs.NewCluster(node, jsii.String("Cluster"), &awsecs.ClusterProps{
		Vpc:         props.Vpc,
		ClusterName: jsii.String(props.ClusterName),
	})

	taskRole := awsiam.NewRole(node, jsii.String("TaskRole"), &awsiam.RoleProps{
		AssumedBy:   awsiam.NewServicePrincipal(jsii.String("ecs-tasks.amazonaws.com"), nil),
		Description: jsii.String("Runtime role assumed by the API container"),
	})

	executionRole := awsiam.NewRole(node, jsii.String("ExecutionRole"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("ecs-tasks.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AmazonECSTaskExecutionRolePolicy")),
		},
	})

	logGroup := awslogs.NewLogGroup(node, jsii.String("ApiLogs"), &awslogs.LogGroupProps{
		Retention:     awslogs.RetentionDays_ONE_MONTH,
		RemovalPolicy: removalPolicy(props.Stage),
	})

	// ALB access logging only supports S3-managed encryption.
	accessLogs := awss3.NewBucket(node, jsii.String("AccessLogs"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		RemovalPolicy:     removalPolicy(props.Stage),
		AutoDeleteObjects: jsii.Bool(!config.IsProdStage(props.Stage)),
	})

	environment := map[string]*string{
		"API_LISTEN_ADDR": jsii.String(fmt.Sprintf(":%d", props.Service.ContainerPort)),
	}
	for k, v := range props.Environment {
		environment[k] = v
	}

	backing, err := capacity.NewBacking(props.Kind)
	if err != nil {
		panic(err)
	}

	result := backing.Attach(node, "Service", &capacity.AttachProps{
		Cluster:            cluster,
		Image:              props.Image,
		CPU:                props.Service.CPU,
		MemoryMiB:          props.Service.MemoryMiB,
		DesiredCount:       props.Service.DesiredCount,
		ContainerPort:      props.Service.ContainerPort,
		PublicLoadBalancer: props.Service.PublicLoadBalancer,
		MinCapacity:        props.Scaling.MinCapacity,
		MaxCapacity:        props.Scaling.MaxCapacity,
		Environment:        &environment,
		TaskRole:           taskRole,
		ExecutionRole:      executionRole,
		LogDriver: awsecs.LogDrivers_AwsLogs(&awsecs.AwsLogDriverProps{
			LogGroup:     logGroup,
			StreamPrefix: jsii.String("api"),
		}),
	})

	result.TargetGroup.ConfigureHealthCheck(&awselasticloadbalancingv2.HealthCheck{
		Path:                    jsii.String(props.HealthCheck.Path),
		Interval:                awscdk.Duration_Seconds(jsii.Number(float64(props.HealthCheck.IntervalSeconds))),
		Timeout:                 awscdk.Duration_Seconds(jsii.Number(float64(props.HealthCheck.TimeoutSeconds))),
		HealthyThresholdCount:   jsii.Number(float64(props.HealthCheck.HealthyThresholdCount)),
		UnhealthyThresholdCount: jsii.Number(float64(props.HealthCheck.UnhealthyThresholdCount)),
		HealthyHttpCodes:        jsii.String("200"),
	})

	result.LoadBalancer.LogAccessLogs(accessLogs, jsii.String("alb"))

	applyScaling(result.Scaling, props.Scaling)

	return &WebService{
		Construct:    node,
		Cluster:      cluster,
		Service:      result.Service,
		LoadBalancer: result.LoadBalancer,
		AccessLogs:   accessLogs,
	}
}

// removalPolicy keeps log data in prod and lets every other stage tear down
// cleanly.
func removalPolicy(stage string) awscdk.RemovalPolicy {
	if config.IsProdStage(stage) {
		return awscdk.RemovalPolicy_RETAIN
	}
	return awscdk.RemovalPolicy_DESTROY
}
