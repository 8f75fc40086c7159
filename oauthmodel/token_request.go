package oauthmodel

import (
	"encoding/json"
	"net/url"

	"github.com/pkg/errors"
)

const (
	getAuthTokenOperation = "getAuthToken"
	getAuthTokenQuery     = "query getAuthToken($code: String!) { getAuthToken(code: $code) { access_token refresh_token expires_in }}"
)

// TokenRequest holds parameters for the getAuthToken GraphQL query.
// The query is sent as a GET with query, operationName and variables in the URL.
type TokenRequest struct {
	// Code is the authorization code received from the resume endpoint.
	// Required: Yes
	// Example: "XYZ987"
	// Usage: Exchanged once for tokens, then becomes invalid
	Code string
}

type tokenRequestVariables struct {
	Code string `json:"code"`
}

// Query encodes the request as URL query parameters.
func (r TokenRequest) Query() (url.Values, error) {
	variables, err := json.Marshal(tokenRequestVariables{Code: r.Code})
	if err != nil {
		return nil, errors.Wrap(err, "[TokenRequest.Query] marshal variables")
	}
	return url.Values{
		"query":         {getAuthTokenQuery},
		"operationName": {getAuthTokenOperation},
		"variables":     {string(variables)},
	}, nil
}
