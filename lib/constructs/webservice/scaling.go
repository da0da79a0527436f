package webservice

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapplicationautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/jsii-runtime-go"

	"github.com/stackmesa/backend-api/config"
)

// applyScaling attaches the utilization and schedule policies to the
// service's scalable task count. The min/max bounds were set when the target
// was enabled; schedules move those bounds at their cron times, which is how
// the service starts and stops outside working hours.
func applyScaling(target awsecs.ScalableTaskCount, spec config.ScalingSpec) {
	target.ScaleOnCpuUtilization(jsii.String("CpuScaling"), &awsecs.CpuUtilizationScalingProps{
		TargetUtilizationPercent: jsii.Number(float64(spec.TargetCPUPercent)),
		ScaleInCooldown:          awscdk.Duration_Seconds(jsii.Number(float64(spec.ScaleInCooldownSeconds))),
		ScaleOutCooldown:         awscdk.Duration_Seconds(jsii.Number(float64(spec.ScaleOutCooldownSeconds))),
	})

	for _, schedule := range spec.Schedules {
		target.ScaleOnSchedule(jsii.String("Schedule-"+schedule.Name), &awsapplicationautoscaling.ScalingSchedule{
			Schedule: awsapplicationautoscaling.Schedule_Cron(&awsapplicationautoscaling.CronOptions{
				Hour:   jsii.String(schedule.Hour),
				Minute: jsii.String(schedule.Minute),
			}),
			MinCapacity: jsii.Number(float64(schedule.MinCapacity)),
			MaxCapacity: jsii.Number(float64(schedule.MaxCapacity)),
		})
	}
}
