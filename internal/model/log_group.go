package model

// LogGroup is a log group as seen by a reconciliation pass.
type LogGroup struct {
	Name string
}

// LogGroupPage is one page of DescribeLogGroups results. NextToken is empty on
// the final page.
type LogGroupPage struct {
	LogGroups []LogGroup
	NextToken string
}

// SubscriptionFilter attaches a log group to a destination.
// RoleARN is only set for role-assumed destinations.
type SubscriptionFilter struct {
	LogGroupName   string
	FilterName     string
	FilterPattern  string
	DestinationARN string
	RoleARN        string
}

// Permission is a resource policy statement allowing a service principal to
// invoke a function.
type Permission struct {
	FunctionARN string
	Action      string
	Principal   string
	StatementID string
}
