package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/moniecodes/SAR-Logging/internal/model"
)

// LambdaAPI is the subset of the Lambda API we use.
type LambdaAPI interface {
	AddPermission(ctx context.Context, params *lambda.AddPermissionInput, optFns ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error)
}

// LambdaClient manages resource policies on destination functions.
type LambdaClient struct {
	client LambdaAPI
}

func NewLambdaClient(cfg aws.Config) *LambdaClient {
	return &LambdaClient{client: lambda.NewFromConfig(cfg)}
}

func NewLambdaClientFromAPI(api LambdaAPI) *LambdaClient {
	return &LambdaClient{client: api}
}

// GrantInvoke adds a statement to the function's resource policy.
func (c *LambdaClient) GrantInvoke(ctx context.Context, p model.Permission) error {
	_, err := c.client.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName: aws.String(p.FunctionARN),
		Action:       aws.String(p.Action),
		Principal:    aws.String(p.Principal),
		StatementId:  aws.String(p.StatementID),
	})
	if err != nil {
		return fmt.Errorf("AddPermission %s: %w", p.FunctionARN, err)
	}
	return nil
}
