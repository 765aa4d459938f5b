package model

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// DestinationMode tells how CloudWatch Logs delivers events to a destination.
type DestinationMode int

const (
	// DirectInvoke destinations are functions invoked by the logs service.
	// They need a resource policy allowing the invocation.
	DirectInvoke DestinationMode = iota
	// RoleAssumed destinations (Kinesis, Firehose, logs destinations) are
	// written to through a delivery role.
	RoleAssumed
)

func (m DestinationMode) String() string {
	switch m {
	case DirectInvoke:
		return "direct-invoke"
	case RoleAssumed:
		return "role-assumed"
	default:
		return fmt.Sprintf("DestinationMode(%d)", int(m))
	}
}

// Destination is the sink every subscription filter points at.
type Destination struct {
	ARN  string
	Mode DestinationMode
}

// ParseDestination classifies an ARN. Functions ("lambda" service) are
// direct-invoke, everything else is role-assumed.
func ParseDestination(s string) (Destination, error) {
	a, err := arn.Parse(s)
	if err != nil {
		return Destination{}, err
	}
	mode := RoleAssumed
	if a.Service == "lambda" {
		mode = DirectInvoke
	}
	return Destination{ARN: s, Mode: mode}, nil
}

// DirectInvoke reports whether the destination is invoked directly.
func (d Destination) DirectInvoke() bool { return d.Mode == DirectInvoke }
