package config

type EnvVars struct {
	AppName    string `env:"APP_NAME" envDefault:"Polestar Auth"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ShowBanner bool   `env:"SHOW_BANNER" envDefault:"true"`
	ShowClaims bool   `env:"SHOW_CLAIMS" envDefault:"false"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetShowBanner() bool {
	return e.ShowBanner
}

// GetShowClaims reports whether the decoded access token claims should be logged after login.
func (e EnvVars) GetShowClaims() bool {
	return e.ShowClaims
}

// Credentials are never given defaults; both must be present in the environment.
type Credentials struct {
	Username string `env:"POLESTAR_USERNAME,required,notEmpty"`
	Password string `env:"POLESTAR_PASSWORD,required,notEmpty,unset"`
}

var _ CredentialsConfig = Credentials{}

func (c Credentials) GetUsername() string {
	return c.Username
}

func (c Credentials) GetPassword() string {
	return c.Password
}
