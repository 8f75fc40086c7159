package oauthmodel

import "net/url"

// ResponseType represents the OAuth 2.0 response type requested from the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType requests an authorization code. It is the only type Polestar ID issues to polmystar.
	CodeResponseType ResponseType = "code"
)

// Redirect query parameters read from Location headers.
const (
	// ResumePathParam carries the PingFederate resume path in the 303 from the authorization endpoint.
	// Example: https://polestarid.eu.polestar.com/as/authorization.oauth2?resumePath=ABC123&client_id=polmystar
	ResumePathParam = "resumePath"

	// CodeParam carries the authorization code in the 302 from the resume endpoint.
	// Example: https://www.polestar.com/sign-in-callback?code=XYZ987&state=foo
	CodeParam = "code"
)

// Credentials holds the form fields posted to the resume endpoint.
type Credentials struct {
	// Username is the Polestar ID login, normally an email address.
	// Form field: pf.username
	Username string

	// Password is the Polestar ID password.
	// Form field: pf.pass
	// Security: Never log or expose this value
	Password string
}

// Form encodes the credentials as the PingFederate login form body.
func (c Credentials) Form() url.Values {
	return url.Values{
		"pf.username": {c.Username},
		"pf.pass":     {c.Password},
	}
}

// String masks the password so credentials can be passed to formatters safely.
func (c Credentials) String() string {
	return "Credentials{Username: " + c.Username + ", Password: ********}"
}
