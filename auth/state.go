package auth

import "golang.org/x/oauth2"

// State is the position of an Authenticator in the login sequence. Each variant carries only the
// data that is valid at that stage.
type State interface {
	String() string
	isState()
}

// Unauthenticated is the initial state, and the state at the start of every login attempt.
type Unauthenticated struct{}

// HaveResumePath is reached once the authorization endpoint has redirected with a resume path.
type HaveResumePath struct {
	ResumePath string
}

// HaveCode is reached once the credentials have been accepted and an authorization code issued.
type HaveCode struct {
	ResumePath string
	Code       string
}

// HaveTokens is reached once the code has been exchanged.
type HaveTokens struct {
	Token *oauth2.Token
}

func (Unauthenticated) isState() {}
func (HaveResumePath) isState()  {}
func (HaveCode) isState()        {}
func (HaveTokens) isState()      {}

func (Unauthenticated) String() string { return "Unauthenticated" }
func (HaveResumePath) String() string  { return "HaveResumePath" }
func (HaveCode) String() string        { return "HaveCode" }
func (HaveTokens) String() string      { return "HaveTokens" }
