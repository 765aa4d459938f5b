package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/moniecodes/SAR-Logging/internal/model"
)

// LogsAPI is the subset of the CloudWatch Logs API we use.
type LogsAPI interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeSubscriptionFilters(ctx context.Context, params *cloudwatchlogs.DescribeSubscriptionFiltersInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeSubscriptionFiltersOutput, error)
	PutSubscriptionFilter(ctx context.Context, params *cloudwatchlogs.PutSubscriptionFilterInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutSubscriptionFilterOutput, error)
}

// CloudWatchClient translates between the CloudWatch Logs API and model types.
type CloudWatchClient struct {
	client LogsAPI
}

// NewCloudWatchClient returns a client backed by the real service.
func NewCloudWatchClient(cfg aws.Config) *CloudWatchClient {
	return &CloudWatchClient{client: cloudwatchlogs.NewFromConfig(cfg)}
}

// NewCloudWatchClientFromAPI wraps an existing LogsAPI implementation.
func NewCloudWatchClientFromAPI(api LogsAPI) *CloudWatchClient {
	return &CloudWatchClient{client: api}
}

// ListLogGroups fetches one page of log groups. prefix narrows the listing
// server-side and may be empty. token is empty for the first page.
func (c *CloudWatchClient) ListLogGroups(ctx context.Context, prefix, token string) (model.LogGroupPage, error) {
	in := &cloudwatchlogs.DescribeLogGroupsInput{}
	if prefix != "" {
		in.LogGroupNamePrefix = aws.String(prefix)
	}
	if token != "" {
		in.NextToken = aws.String(token)
	}
	out, err := c.client.DescribeLogGroups(ctx, in)
	if err != nil {
		return model.LogGroupPage{}, fmt.Errorf("DescribeLogGroups: %w", err)
	}
	page := model.LogGroupPage{
		LogGroups: make([]model.LogGroup, 0, len(out.LogGroups)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, g := range out.LogGroups {
		page.LogGroups = append(page.LogGroups, model.LogGroup{Name: aws.ToString(g.LogGroupName)})
	}
	return page, nil
}

// SubscriptionFilters returns the filters attached to a log group in the order
// the service reports them.
func (c *CloudWatchClient) SubscriptionFilters(ctx context.Context, logGroupName string) ([]model.SubscriptionFilter, error) {
	out, err := c.client.DescribeSubscriptionFilters(ctx, &cloudwatchlogs.DescribeSubscriptionFiltersInput{
		LogGroupName: aws.String(logGroupName),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeSubscriptionFilters %s: %w", logGroupName, err)
	}
	filters := make([]model.SubscriptionFilter, 0, len(out.SubscriptionFilters))
	for _, f := range out.SubscriptionFilters {
		filters = append(filters, model.SubscriptionFilter{
			LogGroupName:   logGroupName,
			FilterName:     aws.ToString(f.FilterName),
			FilterPattern:  aws.ToString(f.FilterPattern),
			DestinationARN: aws.ToString(f.DestinationArn),
			RoleARN:        aws.ToString(f.RoleArn),
		})
	}
	return filters, nil
}

// PutSubscriptionFilter creates or replaces a subscription filter. A missing
// invoke permission on the destination is reported as ErrPermissionMissing.
func (c *CloudWatchClient) PutSubscriptionFilter(ctx context.Context, f model.SubscriptionFilter) error {
	in := &cloudwatchlogs.PutSubscriptionFilterInput{
		LogGroupName:   aws.String(f.LogGroupName),
		FilterName:     aws.String(f.FilterName),
		FilterPattern:  aws.String(f.FilterPattern),
		DestinationArn: aws.String(f.DestinationARN),
	}
	if f.RoleARN != "" {
		in.RoleArn = aws.String(f.RoleARN)
	}
	if _, err := c.client.PutSubscriptionFilter(ctx, in); err != nil {
		if isPermissionMissing(err) {
			return fmt.Errorf("PutSubscriptionFilter %s: %w: %w", f.LogGroupName, ErrPermissionMissing, err)
		}
		return fmt.Errorf("PutSubscriptionFilter %s: %w", f.LogGroupName, err)
	}
	return nil
}
