package vpc

import (
	"errors"

	"github.com/aws/smithy-go"
)

// EC2 error codes the sweep reacts to.
const (
	codeDryRunOperation   = "DryRunOperation"
	codeNACLEntryNotFound = "InvalidNetworkAclEntry.NotFound"
)

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsDryRunSuccess reports whether err is the answer EC2 gives to a DryRun
// request that would have succeeded.
func IsDryRunSuccess(err error) bool {
	return errorCode(err) == codeDryRunOperation
}

// IsNotFound reports whether err says the targeted network ACL entry no longer exists.
func IsNotFound(err error) bool {
	return errorCode(err) == codeNACLEntryNotFound
}
