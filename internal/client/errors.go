package client

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrPermissionMissing is returned by PutSubscriptionFilter when the
// destination function does not allow CloudWatch Logs to invoke it.
var ErrPermissionMissing = errors.New("destination lacks invocation permission")

const invalidParameterCode = "InvalidParameterException"

// isPermissionMissing recognises the InvalidParameterException CloudWatch Logs
// returns when it cannot execute the destination function. The message is
// matched loosely so rewording does not break the recovery path.
func isPermissionMissing(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != invalidParameterCode {
		return false
	}
	msg := strings.ToLower(apiErr.ErrorMessage())
	if !strings.Contains(msg, "permission") {
		return false
	}
	return strings.Contains(msg, "lambda") || strings.Contains(msg, "function")
}
