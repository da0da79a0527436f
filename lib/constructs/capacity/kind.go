package capacity

import "fmt"

// Kind identifies the capacity mode backing the compute cluster.
type Kind string

const (
	// KindFargate runs the service on serverless capacity.
	KindFargate Kind = "fargate"
	// KindEC2 runs the service on an instance-backed auto-scaling group.
	KindEC2 Kind = "ec2"
)

// ParseKind converts a raw string into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindFargate:
		return KindFargate, nil
	case KindEC2:
		return KindEC2, nil
	default:
		return "", fmt.Errorf("unknown capacity kind %q (want %q or %q)", raw, KindFargate, KindEC2)
	}
}
