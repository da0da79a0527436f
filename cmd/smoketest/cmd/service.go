package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ecsAPI is the slice of the ECS API the smoke test depends on.
type ecsAPI interface {
	ListServices(ctx context.Context, in *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error)
	DescribeServices(ctx context.Context, in *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error)
}

// newECSClient initializes an ECS client from the default credential chain.
func newECSClient(ctx context.Context, region string) (*ecs.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return ecs.NewFromConfig(cfg), nil
}

// discoverService resolves the service name when the caller did not pass one.
// It only succeeds when the cluster runs exactly one service.
func discoverService(ctx context.Context, client ecsAPI, cluster string) (string, error) {
	out, err := client.ListServices(ctx, &ecs.ListServicesInput{
		Cluster: aws.String(cluster),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list services in cluster %q: %w", cluster, err)
	}

	switch len(out.ServiceArns) {
	case 0:
		return "", fmt.Errorf("cluster %q runs no services", cluster)
	case 1:
		return serviceNameFromARN(out.ServiceArns[0]), nil
	default:
		return "", fmt.Errorf("cluster %q runs %d services, pass --service to pick one",
			cluster, len(out.ServiceArns))
	}
}

// serviceNameFromARN extracts the service name from an ECS service ARN,
// e.g. arn:aws:ecs:us-east-1:123456789012:service/my-cluster/my-service.
func serviceNameFromARN(arn string) string {
	if i := strings.LastIndex(arn, "/"); i >= 0 {
		return arn[i+1:]
	}
	return arn
}

// serviceSteady reports whether a service has converged: every desired task
// is running and a single deployment is active.
func serviceSteady(svc ecstypes.Service) bool {
	return svc.DesiredCount > 0 &&
		svc.RunningCount == svc.DesiredCount &&
		svc.PendingCount == 0 &&
		len(svc.Deployments) == 1
}

// waitForServiceSteady polls DescribeServices until the service converges or
// the backoff gives up. A missing service aborts the wait immediately.
func waitForServiceSteady(ctx context.Context, client ecsAPI, logger *zap.Logger, cluster, service string, bo backoff.BackOff) error {
	op := func() error {
		out, err := client.DescribeServices(ctx, &ecs.DescribeServicesInput{
			Cluster:  aws.String(cluster),
			Services: []string{service},
		})
		if err != nil {
			return err
		}
		if len(out.Services) == 0 {
			reason := "unknown"
			if len(out.Failures) > 0 {
				reason = aws.ToString(out.Failures[0].Reason)
			}
			return backoff.Permanent(fmt.Errorf("service %q not found in cluster %q: %s",
				service, cluster, reason))
		}

		svc := out.Services[0]
		if !serviceSteady(svc) {
			return fmt.Errorf("running %d/%d tasks, %d pending, %d deployments",
				svc.RunningCount, svc.DesiredCount, svc.PendingCount, len(svc.Deployments))
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.Info("waiting for service to stabilize",
			zap.String("state", err.Error()),
			zap.Duration("next_check", next))
	}

	return backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify)
}
