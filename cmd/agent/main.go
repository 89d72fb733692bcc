package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/apto-jkhatri/it-asset-management-app/internal/agent"
	"github.com/apto-jkhatri/it-asset-management-app/internal/notify"
	"github.com/apto-jkhatri/it-asset-management-app/internal/remote"
	"github.com/apto-jkhatri/it-asset-management-app/internal/session"
	"github.com/apto-jkhatri/it-asset-management-app/internal/store"
	"github.com/apto-jkhatri/it-asset-management-app/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file")
		email      = flag.String("email", "", "log in with this email before polling")
		password   = flag.String("password", "", "password for -email")
		logout     = flag.Bool("logout", false, "log out on shutdown")
		env        = flag.String("env", "dev", "log verbosity profile")
	)
	flag.Parse()

	l := logger.New(*env)

	cfg, err := agent.LoadConfig(*configPath)
	if err != nil {
		l.Fatal().Err(err).Msg("config load failed")
	}

	// The client needs the session's token and the session needs the client
	// for login/logout, so the token is supplied through a closure.
	var sess *session.Session
	client, err := remote.NewClient(cfg.APIURL, remote.TokenFunc(func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	}))
	if err != nil {
		l.Fatal().Err(err).Msg("invalid api url")
	}
	sess = session.New(cfg.SessionPath, client, l)
	sess.Restore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *email != "" {
		if err := sess.Login(ctx, *email, *password); err != nil {
			l.Fatal().Err(err).Msg("login failed")
		}
	}
	if sess.CurrentUser() == nil {
		l.Fatal().Msg("no session; run with -email and -password to log in")
	}
	l.Info().Str("user", sess.CurrentUser().Email).Msg("agent starting")

	st := store.New(client, sess, l)
	p := agent.NewPoller(st, client, sess, notify.NewLog(l), l, cfg.RequestInterval, cfg.CollectionInterval)
	p.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	p.Stop()
	if *logout {
		sess.Logout(context.Background())
	}
	l.Info().Msg("agent stopped")
}
