// internal/workers/lookup/dispatch-lookup/urls.go
package dispatchlookup

import (
	"fmt"
	"net/url"
	"strings"

	"lookup-relay/pkg/registry"
)

const licenseKeyParam = "license_key"

// buildURL binds cmd's endpoint to baseURL and places args as its query parameters (or as a
// path segment), followed by the license key.
func buildURL(baseURL string, cmd registry.Command, args []string, licenseKey string) (string, error) {
	if len(args) != cmd.Arity() {
		return "", fmt.Errorf("%s takes %d arguments, got %d", cmd.Kind, cmd.Arity(), len(args))
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	path := cmd.Endpoint
	query := url.Values{}
	if cmd.PathArg {
		path = path + "/" + url.PathEscape(args[0])
	} else {
		for i, name := range cmd.QueryParams {
			query.Set(name, args[i])
		}
	}
	query.Set(licenseKeyParam, licenseKey)

	u = u.JoinPath(path)
	u.RawQuery = query.Encode()
	return u.String(), nil
}
