package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-polestar-auth/auth"
	"github.com/jrsteele09/go-polestar-auth/internal/config"
	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
	"github.com/jrsteele09/go-polestar-auth/oauthmodel"
	"github.com/jrsteele09/go-polestar-auth/token/jwt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		var authErr *auth.AuthError
		if autherrors.As(err, &authErr) {
			log.Error().Err(err).Int("status", authErr.StatusCode).Msg("Polestar ID rejected the credentials")
		} else {
			log.Error().Err(err).Msg("Login failed")
		}
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	setupLogger(c.GetLogLevel())
	if c.GetShowBanner() {
		displayAppname(c.GetAppName())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authenticator, err := auth.NewAuthenticator(oauthmodel.Credentials{
		Username: c.GetUsername(),
		Password: c.GetPassword(),
	})
	if err != nil {
		return err
	}
	defer authenticator.Close()

	token, err := authenticator.Login(ctx)
	if err != nil {
		return err
	}

	if c.GetShowClaims() {
		logClaims(token.AccessToken)
	}

	fmt.Println("Access Token:", token.AccessToken)
	return nil
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

func logClaims(accessToken string) {
	claims, err := jwt.Inspect(accessToken, time.Now())
	if err != nil {
		log.Warn().Err(err).Msg("Access token is not a readable JWT")
		return
	}
	log.Info().
		Str("sub", claims.Subject).
		Str("iss", claims.Issuer).
		Str("client_id", claims.ClientID).
		Time("exp", claims.Expiry).
		Bool("active", claims.Active).
		Msg("Access token claims")
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
