package api

import (
	"fmt"
	"strings"

	"github.com/madappgang/identifo-go/apierror"
)

// Transport failure messages that mark a network-level (or CORS) problem.
// CORS rejections surface as plain network failures on the client, so the
// whole list maps to the same error id.
var networkErrorMessages = []string{
	"Network Error",
	"Failed to fetch",
	"Preflight response is not successful",
	"not allowed by Access-Control-Allow-Origin",
}

func isNetworkErrorMessage(msg string) bool {
	for _, m := range networkErrorMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// networkError normalizes a transport failure into the single coded error the
// rest of the SDK understands. The detailed message proactively names the
// most common cause: the calling origin missing from the application's
// redirect URL allow-list.
func networkError(origin string, cause error) *apierror.Error {
	return &apierror.Error{
		ID:      apierror.CodeNetwork,
		Status:  0,
		Message: "network error",
		DetailedMessage: fmt.Sprintf(
			"Unable to reach the identity server: %v. "+
				"If the server is up, add %q to the application's redirect URL allow-list.",
			cause, origin),
	}
}
