package config

import (
	"github.com/caarlos0/env/v11"
)

// SynthEnvironmentVariables are read once per synthesis run.
type SynthEnvironmentVariables struct {
	// Overrides the stage-derived deployment profile location when set.
	ProfilePath string `env:"PROFILE_PATH"`
	// When this value changes, the task definition gets a new revision on
	// the next deploy even if the image content is unchanged.
	ImageRevision string `env:"IMAGE_REVISION"`
}

// DeployEnvironmentVariables identify the AWS account and region the stack
// deploys into. The CDK_DEPLOY_* pair wins; the CDK_DEFAULT_* pair is what
// the toolkit resolves from the active credentials.
type DeployEnvironmentVariables struct {
	Account        string `env:"CDK_DEPLOY_ACCOUNT"`
	Region         string `env:"CDK_DEPLOY_REGION"`
	DefaultAccount string `env:"CDK_DEFAULT_ACCOUNT"`
	DefaultRegion  string `env:"CDK_DEFAULT_REGION"`
}

// GetEnvironmentVariables parses the environment into T. A missing required
// variable is an operator error, so it aborts synthesis.
func GetEnvironmentVariables[T any]() T {
	vars, err := env.ParseAs[T]()
	if err != nil {
		panic("environment: " + err.Error())
	}
	return vars
}
