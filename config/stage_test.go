package config_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/stretchr/testify/require"

	"github.com/stackmesa/backend-api/config"
)

func TestGetStage_Default(t *testing.T) {
	app := awscdk.NewApp(nil)
	require.Equal(t, config.DefaultStage, config.GetStage(app))
}

func TestGetStage_FromContext(t *testing.T) {
	app := awscdk.NewApp(&awscdk.AppProps{
		Context: &map[string]interface{}{config.StageContextKey: "prod"},
	})
	require.Equal(t, "prod", config.GetStage(app))
	require.True(t, config.IsProdStage("prod"))
	require.False(t, config.IsProdStage("dev"))
}
