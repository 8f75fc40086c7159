package auth

import (
	"net/http"
	"net/url"

	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
	"github.com/pkg/errors"
)

// redirectParam returns the named query parameter of the response's Location header.
func redirectParam(resp *http.Response, name string) (string, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return "", autherrors.ErrMissingLocation
	}
	return queryParam(location, name)
}

func queryParam(location, name string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", autherrors.Wrapf(autherrors.ErrInvalidLocation, "%v", err)
	}
	value := u.Query().Get(name)
	if value == "" {
		return "", errors.Wrap(autherrors.ErrMissingParameter, name)
	}
	return value, nil
}
