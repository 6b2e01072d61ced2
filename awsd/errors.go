package awsd

import (
	"context"
	"errors"
	"net"

	"github.com/aws/smithy-go"
)

// recoverableAccessCodes are the EC2 API error codes meaning the caller's
// credentials cannot list a region. Anything else coming back from the API
// is unexpected and aborts the run instead of being masked as "region
// inaccessible".
var recoverableAccessCodes = map[string]bool{
	"AuthFailure":           true,
	"UnauthorizedOperation": true,
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"OptInRequired":         true,
	"RequestExpired":        true,
}

// isRegionAccessError reports whether a failure while listing one region is
// the recoverable credentials/permissions/connectivity kind that should only
// skip that region.
func isRegionAccessError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return recoverableAccessCodes[apiErr.ErrorCode()]
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
