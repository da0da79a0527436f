package main

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/stackmesa/backend-api/config"
	"github.com/stackmesa/backend-api/lib/utils"
	"github.com/stackmesa/backend-api/stacks"
)

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

func main() {
	defer func() { _ = zap.L().Sync() }()

	app := awscdk.NewApp(nil)

	stage := config.GetStage(app)
	profile := config.MustLoadProfile(config.ProfilePath(utils.GetProjectRootDir(), stage))

	stackName := fmt.Sprintf("BackendApi-%s-Stack", stage)
	_, exports := stacks.BackendStack(app, stackName, &stacks.BackendStackProps{
		StackProps: awscdk.StackProps{Env: env()},
		Profile:    profile,
		Stage:      stage,
	})

	zap.L().Info("stack assembled",
		zap.String("stack", stackName),
		zap.String("stage", stage),
		zap.String("capacity", exports.CapacityKind),
	)

	app.Synth(nil)
}

// env determines the AWS environment (account+region) in which our stack is to
// be deployed. For more information see: https://docs.aws.amazon.com/cdk/latest/guide/environments.html
func env() *awscdk.Environment {
	vars := config.GetEnvironmentVariables[config.DeployEnvironmentVariables]()

	account := vars.Account
	region := vars.Region
	if account == "" || region == "" {
		account = vars.DefaultAccount
		region = vars.DefaultRegion
	}

	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}
