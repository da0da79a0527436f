package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// DeploymentProfile carries every literal parameter the topology stack
// consumes. One YAML file per stage lives under deployments/profiles/; the
// stack never computes parameters at runtime, it only reads them from here.
type DeploymentProfile struct {
	Network     NetworkSpec     `yaml:"network"`
	Cluster     ClusterSpec     `yaml:"cluster"`
	Service     ServiceSpec     `yaml:"service"`
	Scaling     ScalingSpec     `yaml:"scaling"`
	HealthCheck HealthCheckSpec `yaml:"health-check"`
}

// NetworkSpec shapes the VPC the service runs in.
type NetworkSpec struct {
	MaxAzs         int `yaml:"max-azs" validate:"required,min=1,max=3"`
	NatGateways    int `yaml:"nat-gateways" validate:"min=0,max=3"`
	SubnetCidrMask int `yaml:"subnet-cidr-mask" validate:"required,min=16,max=28"`
}

// ClusterSpec names the compute cluster.
type ClusterSpec struct {
	Name string `yaml:"name" validate:"required,hostname_rfc1123"`
}

// ServiceSpec is the desired-state declaration for the running workload.
type ServiceSpec struct {
	CPU                int  `yaml:"cpu" validate:"required,oneof=256 512 1024 2048 4096"`
	MemoryMiB          int  `yaml:"memory-mib" validate:"required,min=512"`
	DesiredCount       int  `yaml:"desired-count" validate:"min=0"`
	ContainerPort      int  `yaml:"container-port" validate:"required,min=1,max=65535"`
	PublicLoadBalancer bool `yaml:"public-load-balancer"`
}

// ScalingSpec bounds the replica count and declares the triggers that move
// it: a CPU utilization target plus zero or more cron schedules.
type ScalingSpec struct {
	MinCapacity             int            `yaml:"min-capacity" validate:"min=0"`
	MaxCapacity             int            `yaml:"max-capacity" validate:"required,gtefield=MinCapacity"`
	TargetCPUPercent        int            `yaml:"target-cpu-percent" validate:"required,min=1,max=100"`
	ScaleInCooldownSeconds  int            `yaml:"scale-in-cooldown-seconds" validate:"min=0"`
	ScaleOutCooldownSeconds int            `yaml:"scale-out-cooldown-seconds" validate:"min=0"`
	Schedules               []ScheduleSpec `yaml:"schedules" validate:"omitempty,dive"`
}

// ScheduleSpec is a cron-triggered capacity adjustment. Hour and minute are
// kept as strings because the scheduler accepts field expressions ("7",
// "*/2"), not just integers.
type ScheduleSpec struct {
	Name        string `yaml:"name" validate:"required"`
	Hour        string `yaml:"hour" validate:"required"`
	Minute      string `yaml:"minute" validate:"required"`
	MinCapacity int    `yaml:"min-capacity" validate:"min=0"`
	MaxCapacity int    `yaml:"max-capacity" validate:"gtefield=MinCapacity"`
}

// HealthCheckSpec configures the load balancer's target health evaluation.
type HealthCheckSpec struct {
	Path                    string `yaml:"path" validate:"required,startswith=/"`
	IntervalSeconds         int    `yaml:"interval-seconds" validate:"required,min=5,max=300"`
	TimeoutSeconds          int    `yaml:"timeout-seconds" validate:"required,min=2,max=120"`
	HealthyThresholdCount   int    `yaml:"healthy-threshold-count" validate:"required,min=2,max=10"`
	UnhealthyThresholdCount int    `yaml:"unhealthy-threshold-count" validate:"required,min=2,max=10"`
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(crossFieldChecks, DeploymentProfile{})
	return v
}

// crossFieldChecks holds the invariants that span multiple specs: the desired
// count must sit inside the scaling bounds, and a health probe must time out
// before the next one fires.
func crossFieldChecks(sl validator.StructLevel) {
	p := sl.Current().Interface().(DeploymentProfile)

	if p.Service.DesiredCount < p.Scaling.MinCapacity || p.Service.DesiredCount > p.Scaling.MaxCapacity {
		sl.ReportError(p.Service.DesiredCount, "Service.DesiredCount", "DesiredCount", "withinscalingbounds", "")
	}
	if p.HealthCheck.TimeoutSeconds >= p.HealthCheck.IntervalSeconds {
		sl.ReportError(p.HealthCheck.TimeoutSeconds, "HealthCheck.TimeoutSeconds", "TimeoutSeconds", "ltintervalseconds", "")
	}
}

// Validate checks the profile against the static invariants. It never talks
// to the provider; everything here is knowable before synthesis.
func (p *DeploymentProfile) Validate() error {
	return profileValidator.Struct(p)
}

// LoadProfile reads and validates the profile at path.
func LoadProfile(path string) (*DeploymentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deployment profile: %w", err)
	}
	profile := &DeploymentProfile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse deployment profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deployment profile %s: %w", path, err)
	}
	return profile, nil
}

// MustLoadProfile is LoadProfile for synthesis paths, where a broken profile
// should abort immediately rather than produce a partial template.
func MustLoadProfile(path string) *DeploymentProfile {
	profile, err := LoadProfile(path)
	if err != nil {
		panic(err)
	}
	return profile
}

// ProfilePath resolves the profile file for a stage. The PROFILE_PATH
// environment variable overrides the stage-derived location.
func ProfilePath(rootDir, stage string) string {
	if override := GetEnvironmentVariables[SynthEnvironmentVariables]().ProfilePath; override != "" {
		return override
	}
	return filepath.Join(rootDir, "deployments", "profiles", stage+".yaml")
}
