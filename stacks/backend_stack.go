package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecrassets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/stackmesa/backend-api/config"
	"github.com/stackmesa/backend-api/lib/constructs/network"
	"github.com/stackmesa/backend-api/lib/constructs/webservice"
	"github.com/stackmesa/backend-api/lib/utils"
)

type BackendStackProps struct {
	awscdk.StackProps
	// Profile drives every sizing decision in the stack. It is validated
	// again here so directly constructed stacks get the same guarantees as
	// ones going through the profile loader.
	Profile *config.DeploymentProfile
	// Stage falls back to the stage CDK context value when empty.
	Stage string
}

// BackendStackExports carries the identifiers follow-up tooling needs to
// locate the deployed service.
type BackendStackExports struct {
	LoadBalancerDNS string
	ServiceName     string
	ClusterName     string
	CapacityKind    string
}

func BackendStack(scope constructs.Construct, id string, props *BackendStackProps) (awscdk.Stack, BackendStackExports) {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)

	if !config.IsStackInSynthesis(stack) {
		return stack, BackendStackExports{}
	}

	if props == nil || props.Profile == nil {
		panic("BackendStack requires a deployment profile")
	}
	profile := props.Profile
	if err := profile.Validate(); err != nil {
		panic(err)
	}

	stage := props.Stage
	if stage == "" {
		stage = config.GetStage(stack)
	}

	params := config.NewCDKParams(stack)
	selector := config.NewCapacitySelector(stack)
	synthEnv := config.GetEnvironmentVariables[config.SynthEnvironmentVariables]()

	// Forcing a new image revision forces a task definition revision, which
	// is the redeploy knob for otherwise unchanged parameters.
	var buildArgs *map[string]*string
	if synthEnv.ImageRevision != "" {
		buildArgs = &map[string]*string{
			"IMAGE_REVISION": jsii.String(synthEnv.ImageRevision),
		}
	}

	image := awsecrassets.NewDockerImageAsset(stack, jsii.String("ApiImageAsset"), &awsecrassets.DockerImageAssetProps{
		Directory: jsii.String(utils.GetProjectRootDir()),
		File:      jsii.String("deployments/Dockerfile"),
		Exclude:   jsii.Strings("cdk.out", ".git"),
		BuildArgs: buildArgs,
		Platform:  awsecrassets.Platform_LINUX_AMD64(),
	})

	net := network.NewNetwork(stack, "Network", &network.NetworkProps{
		MaxAzs:         profile.Network.MaxAzs,
		NatGateways:    profile.Network.NatGateways,
		SubnetCidrMask: profile.Network.SubnetCidrMask,
	})

	api := webservice.NewWebService(stack, "Api", &webservice.WebServiceProps{
		Vpc:         net.Vpc,
		Kind:        selector.Kind,
		Image:       awsecs.ContainerImage_FromDockerImageAsset(image),
		ClusterName: profile.Cluster.Name,
		Stage:       stage,
		Service:     profile.Service,
		Scaling:     profile.Scaling,
		HealthCheck: profile.HealthCheck,
		Environment: map[string]*string{
			"API_LOG_LEVEL": params.LogLevel.ValueAsString(),
		},
	})

	// Helper function to construct export names scoped to the stage
	nameWithStage := func(name string) string {
		return "BackendApi-" + name + "-" + stage
	}

	awscdk.NewCfnOutput(stack, jsii.String("LoadBalancerDNSOutput"), &awscdk.CfnOutputProps{
		Value:       api.LoadBalancer.LoadBalancerDnsName(),
		Description: jsii.String("Public DNS name of the API load balancer"),
		ExportName:  jsii.String(nameWithStage("LoadBalancerDNS")),
	})

	awscdk.NewCfnOutput(stack, jsii.String("ServiceNameOutput"), &awscdk.CfnOutputProps{
		Value:       api.Service.ServiceName(),
		Description: jsii.String("Name of the ECS service running the API"),
		ExportName:  jsii.String(nameWithStage("ServiceName")),
	})

	awscdk.NewCfnOutput(stack, jsii.String("ClusterNameOutput"), &awscdk.CfnOutputProps{
		Value:       api.Cluster.ClusterName(),
		Description: jsii.String("Name of the ECS cluster hosting the API"),
		ExportName:  jsii.String(nameWithStage("ClusterName")),
	})

	awscdk.NewCfnOutput(stack, jsii.String("CapacityKindOutput"), &awscdk.CfnOutputProps{
		Value:       jsii.String(string(selector.Kind)),
		Description: jsii.String("Capacity mode the cluster was synthesized with"),
		ExportName:  jsii.String(nameWithStage("CapacityKind")),
	})

	exports := BackendStackExports{
		LoadBalancerDNS: *api.LoadBalancer.LoadBalancerDnsName(),
		ServiceName:     *api.Service.ServiceName(),
		ClusterName:     *api.Cluster.ClusterName(),
		CapacityKind:    string(selector.Kind),
	}

	return stack, exports
}
