package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
)

// IsStackInSynthesis reports whether the toolkit is actually synthesizing
// this stack. `cdk list` constructs the app with bundling disabled, and
// skipping the stack body keeps that path from staging container assets.
func IsStackInSynthesis(stack awscdk.Stack) bool {
	required := stack.BundlingRequired()
	return required != nil && *required
}
