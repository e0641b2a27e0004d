package main

import (
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"ustat/internal/app"
	"ustat/internal/domain"
	"ustat/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	ttl := flag.Duration("access-ttl", mockapi.DefaultAccessTTL, "access token lifetime")
	rotate := flag.Bool("rotate-refresh", false, "issue a new refresh token on every refresh")
	email := flag.String("user", "", "seed an account with this e-mail")
	password := flag.String("password", "", "password of the seeded account")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := app.NewLogger(*level, "text")
	if err != nil {
		logrus.Fatal(err)
	}

	srv := mockapi.New(mockapi.Options{
		AccessTTL:     *ttl,
		RotateRefresh: *rotate,
		Logger:        log,
	})
	if *email != "" {
		srv.AddUser(domain.User{Email: *email}, *password)
		log.WithField("email", *email).Info("seeded account")
	}

	hs := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Infof("mock api listening on %s", *addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}
