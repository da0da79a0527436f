package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const (
	// StageContextKey is the CDK context key selecting the deployment stage.
	StageContextKey = "stage"

	DefaultStage = "dev"
	ProdStage    = "prod"
)

// GetStage reads the deployment stage from the CDK context, defaulting to
// dev. The stage picks the deployment profile and suffixes the stack name.
func GetStage(scope constructs.Construct) string {
	if ctx := scope.Node().TryGetContext(jsii.String(StageContextKey)); ctx != nil {
		if s, ok := ctx.(string); ok && s != "" {
			return s
		}
	}
	return DefaultStage
}

// IsProdStage reports whether stage gets data-retaining defaults (access-log
// bucket survives stack teardown).
func IsProdStage(stage string) bool {
	return stage == ProdStage
}
