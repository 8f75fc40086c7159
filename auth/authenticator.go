package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
	"github.com/jrsteele09/go-polestar-auth/oauthmodel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"
)

// Polestar ID endpoints. These are fixed by the provider and the polmystar client registration.
const (
	clientID         = "polmystar"
	redirectURI      = "https://www.polestar.com/sign-in-callback"
	idpBaseURL       = "https://polestarid.eu.polestar.com"
	authorizationURL = idpBaseURL + "/as/authorization.oauth2"
	resumeURLFormat  = idpBaseURL + "/as/%s/resume/as/authorization.ping"
	tokenURL         = "https://pc-api.polestar.com/eu-north-1/auth/"
)

const (
	stepResumePath = "resume_path"
	stepCode       = "authorization_code"
	stepToken      = "token"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Authenticator drives the Polestar ID authorization-code login and holds the resulting token.
// It is not safe for concurrent use.
type Authenticator struct {
	creds          oauthmodel.Credentials
	httpClient     *http.Client
	oauthConfig    *oauth2.Config
	state          State
	lastStatusCode int
	attemptID      string
	logger         zerolog.Logger
	nowTime        func() time.Time // nowTime function (injectable for testing)
}

// Option defines a function type to modify the Authenticator instance.
type Option func(*Authenticator)

// WithTransport replaces the HTTP transport used for all provider calls.
func WithTransport(transport http.RoundTripper) Option {
	return func(a *Authenticator) {
		a.httpClient.Transport = transport
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(a *Authenticator) {
		a.nowTime = nowFunc
	}
}

// NewAuthenticator creates an Authenticator for the given account. The caller owns the returned
// value and must Close it to release its connections.
func NewAuthenticator(creds oauthmodel.Credentials, options ...Option) (*Authenticator, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, errors.Wrap(autherrors.ErrMissingCredentials, "[NewAuthenticator]")
	}

	// PingFederate ties the resume path to session cookies set by the authorization endpoint.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "[NewAuthenticator] cookiejar.New")
	}

	a := &Authenticator{
		creds: creds,
		httpClient: &http.Client{
			Jar:       jar,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		oauthConfig: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authorizationURL,
				TokenURL: tokenURL,
			},
		},
		state:   Unauthenticated{},
		logger:  log.Logger,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(a)
	}

	return a, nil
}

// Close releases the idle connections held by the Authenticator's HTTP client.
func (a *Authenticator) Close() error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// Login runs the full sequence from a fresh state: resume path, authorization code, token exchange.
// The first failing step aborts the attempt.
func (a *Authenticator) Login(ctx context.Context) (*oauth2.Token, error) {
	a.attemptID = uuid.NewString()
	a.state = Unauthenticated{}
	a.lastStatusCode = 0

	a.stepLogger("login").Info().Msg("Starting Polestar ID login")

	if _, err := a.ResumePath(ctx); err != nil {
		return nil, err
	}
	if _, err := a.AuthorizationCode(ctx); err != nil {
		return nil, err
	}
	token, err := a.ExchangeCode(ctx)
	if err != nil {
		return nil, err
	}

	a.stepLogger("login").Info().Time("expiry", token.Expiry).Msg("Polestar ID login complete")
	return token, nil
}

// ResumePath starts a new login sequence at the authorization endpoint and returns the resume path
// from its 303 redirect. Any state from a previous sequence is discarded.
func (a *Authenticator) ResumePath(ctx context.Context) (string, error) {
	a.state = Unauthenticated{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.oauthConfig.AuthCodeURL(""), nil)
	if err != nil {
		return "", errors.Wrap(err, "[Authenticator.ResumePath] NewRequest")
	}

	resp, err := a.do(req, stepResumePath)
	if err != nil {
		return "", errors.Wrap(err, "[Authenticator.ResumePath] error getting resume path")
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusSeeOther {
		return "", errors.Wrapf(autherrors.ErrUnexpectedStatus, "[Authenticator.ResumePath] error getting resume path: %d", resp.StatusCode)
	}

	resumePath, err := redirectParam(resp, oauthmodel.ResumePathParam)
	if err != nil {
		return "", errors.Wrap(err, "[Authenticator.ResumePath]")
	}

	a.state = HaveResumePath{ResumePath: resumePath}
	return resumePath, nil
}

// AuthorizationCode submits the credentials to the resume endpoint and returns the authorization code
// from its 302 redirect. Rejections are reported as *AuthError.
func (a *Authenticator) AuthorizationCode(ctx context.Context) (string, error) {
	current, ok := a.state.(HaveResumePath)
	if !ok {
		return "", &PreconditionError{Operation: "AuthorizationCode", State: a.state}
	}

	resumeURL := fmt.Sprintf(resumeURLFormat, url.PathEscape(current.ResumePath)) + "?" + url.Values{"client_id": {clientID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resumeURL, strings.NewReader(a.creds.Form().Encode()))
	if err != nil {
		return "", errors.Wrap(err, "[Authenticator.AuthorizationCode] NewRequest")
	}
	req.Header.Set("Content-Type", contentTypeForm)

	resp, err := a.do(req, stepCode)
	if err != nil {
		return "", errors.Wrap(err, "[Authenticator.AuthorizationCode] error submitting credentials")
	}
	defer closeBody(resp)

	a.lastStatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusFound {
		return "", &AuthError{Message: "error getting code", StatusCode: resp.StatusCode}
	}

	code, err := redirectParam(resp, oauthmodel.CodeParam)
	if err != nil {
		return "", &AuthError{Message: "code not found in redirection URL", StatusCode: resp.StatusCode, Err: err}
	}

	a.state = HaveCode{ResumePath: current.ResumePath, Code: code}
	return code, nil
}

// ExchangeCode trades the authorization code for an access and refresh token pair.
func (a *Authenticator) ExchangeCode(ctx context.Context) (*oauth2.Token, error) {
	current, ok := a.state.(HaveCode)
	if !ok {
		return nil, &PreconditionError{Operation: "ExchangeCode", State: a.state}
	}

	query, err := oauthmodel.TokenRequest{Code: current.Code}.Query()
	if err != nil {
		return nil, errors.Wrap(err, "[Authenticator.ExchangeCode]")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.oauthConfig.Endpoint.TokenURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Authenticator.ExchangeCode] NewRequest")
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := a.do(req, stepToken)
	if err != nil {
		return nil, errors.Wrap(err, "[Authenticator.ExchangeCode] error getting token")
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(autherrors.ErrUnexpectedStatus, "[Authenticator.ExchangeCode] error getting token: %d", resp.StatusCode)
	}

	var tokenResponse oauthmodel.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, autherrors.Wrapf(autherrors.ErrTokenResponse, "[Authenticator.ExchangeCode] decode: %v", err)
	}

	token, err := tokenResponse.Token(a.nowTime())
	if err != nil {
		return nil, errors.Wrap(err, "[Authenticator.ExchangeCode]")
	}

	a.state = HaveTokens{Token: token}
	return token, nil
}

// State returns the current position in the login sequence.
func (a *Authenticator) State() State {
	return a.state
}

// Token returns the token from the last successful exchange, or nil.
func (a *Authenticator) Token() *oauth2.Token {
	if current, ok := a.state.(HaveTokens); ok {
		return current.Token
	}
	return nil
}

func (a *Authenticator) AccessToken() string {
	if t := a.Token(); t != nil {
		return t.AccessToken
	}
	return ""
}

func (a *Authenticator) RefreshToken() string {
	if t := a.Token(); t != nil {
		return t.RefreshToken
	}
	return ""
}

// Expiry returns the absolute expiry of the access token, or the zero time.
func (a *Authenticator) Expiry() time.Time {
	if t := a.Token(); t != nil {
		return t.Expiry
	}
	return time.Time{}
}

// LastStatusCode returns the status of the most recent resume endpoint response.
func (a *Authenticator) LastStatusCode() int {
	return a.lastStatusCode
}

// Client returns an HTTP client that sends the access token as a bearer token on every request.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	token := a.Token()
	if token == nil {
		return nil, errors.Wrap(autherrors.ErrNoToken, "[Authenticator.Client]")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: a.httpClient.Transport})
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(token)), nil
}

func (a *Authenticator) do(req *http.Request, step string) (*http.Response, error) {
	logger := a.stepLogger(step)
	logger.Debug().Str("method", req.Method).Str("path", req.URL.Path).Msg("Sending request")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		logger.Err(err).Msg("Request failed")
		return nil, err
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("Received response")
	return resp, nil
}

func (a *Authenticator) stepLogger(step string) *zerolog.Logger {
	ctx := a.logger.With().Str("step", step)
	if a.attemptID != "" {
		ctx = ctx.Str("attempt_id", a.attemptID)
	}
	logger := ctx.Logger()
	return &logger
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
