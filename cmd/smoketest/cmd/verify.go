package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	clusterName     string
	serviceName     string
	baseURL         string
	awsRegion       string
	waitTimeout     time.Duration
	skipServiceWait bool
	jsonLogs        bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a deployed environment end to end",
	Long: `Verify that a deployed environment serves traffic.

The check runs in two phases:
  1. Wait for the ECS service to reach a steady state: the running task
     count matches the desired count and a single deployment is active.
  2. Probe the public endpoints through the load balancer and compare
     the responses against the expected payloads.

Phase 1 needs AWS credentials with ecs:ListServices and
ecs:DescribeServices permissions. Use --skip-service-wait to probe the
endpoints without touching the AWS API.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&clusterName, "cluster", "backend-api-cluster",
		"Name of the ECS cluster to inspect")
	verifyCmd.Flags().StringVar(&serviceName, "service", "",
		"Name of the ECS service (auto-discovered when the cluster runs a single service)")
	verifyCmd.Flags().StringVar(&baseURL, "base-url", "",
		"Base URL of the deployed API, e.g. http://<load-balancer-dns>")
	verifyCmd.Flags().StringVar(&awsRegion, "region", "",
		"AWS region (defaults to the SDK credential chain)")
	verifyCmd.Flags().DurationVar(&waitTimeout, "timeout", 5*time.Minute,
		"Overall timeout for the verification")
	verifyCmd.Flags().BoolVar(&skipServiceWait, "skip-service-wait", false,
		"Skip the ECS steady-state check and only probe the endpoints")
	verifyCmd.Flags().BoolVar(&jsonLogs, "json", false,
		"Emit JSON logs instead of console output")
}

func runVerify(cmd *cobra.Command, args []string) error {
	logger, err := initLogger(jsonLogs)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if baseURL == "" {
		return fmt.Errorf("--base-url is required")
	}
	target := normalizeBaseURL(baseURL)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()

	logger.Info("smoke test starting",
		zap.String("version", Version),
		zap.String("cluster", clusterName),
		zap.String("base_url", target))

	if !skipServiceWait {
		client, err := newECSClient(ctx, awsRegion)
		if err != nil {
			return fmt.Errorf("failed to initialize AWS client: %w", err)
		}

		service := serviceName
		if service == "" {
			service, err = discoverService(ctx, client, clusterName)
			if err != nil {
				return err
			}
			logger.Info("discovered service", zap.String("service", service))
		}

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 2 * time.Second
		bo.MaxInterval = 15 * time.Second
		bo.MaxElapsedTime = waitTimeout

		if err := waitForServiceSteady(ctx, client, logger, clusterName, service, bo); err != nil {
			return fmt.Errorf("service did not stabilize: %w", err)
		}
		logger.Info("service is steady", zap.String("service", service))
	}

	if err := probeEndpoints(ctx, logger, target); err != nil {
		return fmt.Errorf("endpoint probes failed: %w", err)
	}

	logger.Info("smoke test passed")
	return nil
}

func initLogger(jsonLogs bool) (*zap.Logger, error) {
	var config zap.Config

	if jsonLogs {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build()
}
