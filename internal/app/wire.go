package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"ustat/internal/api"
	"ustat/internal/domain"
	"ustat/internal/session"
	"ustat/internal/store"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Wire bundles the stores, session and clients for the CLI.
type Wire struct {
	Config  Config
	Log     logrus.FieldLogger
	KV      domain.KV
	Tokens  *store.Tokens
	Session *session.Context
	Reauth  *api.Reauthorizer
	API     *api.Client // main API
	CalcAPI *api.Client // calculation API
	HTTP    *http.Client

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. cfg must be normalized.
func NewWire(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Wire, error) {
	if log == nil {
		log = DiscardLogger()
	}
	w := &Wire{Config: cfg, Log: log, HTTP: cfg.HTTP}
	if w.HTTP == nil {
		w.HTTP = http.DefaultClient
	}

	kv, err := w.openKV(ctx)
	if err != nil {
		return nil, err
	}
	w.KV = kv
	w.Tokens = store.NewTokens(kv)

	// The session is the failure hook, so it exists before the reauthorizer.
	w.Session = session.New(w.Tokens, log.WithField("component", "session"))
	w.Reauth = api.NewReauthorizer(api.ReauthOptions{
		URL:       cfg.APIURL + api.RefreshPath,
		HTTP:      w.HTTP,
		Timeout:   cfg.Timeout,
		Tokens:    w.Tokens,
		Logger:    log.WithField("component", "reauth"),
		OnFailure: w.Session,
	})

	if w.API, err = w.client(cfg.APIURL, "api"); err != nil {
		_ = w.Close()
		return nil, err
	}
	if w.CalcAPI, err = w.client(cfg.CalcURL, "calc"); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Close releases backend connections.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c())
	}
	w.closers = nil
	return errors.Join(errs...)
}

func (w *Wire) openKV(ctx context.Context) (domain.KV, error) {
	cfg := w.Config
	switch cfg.Store {
	case StoreMemory:
		return store.NewMemoryKV(), nil
	case StoreRedis:
		client, err := store.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, client.Close)
		kv := store.NewRedisKV(client, cfg.RedisPrefix)
		// An unreachable server reads as signed out, call by call.
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := kv.Ping(pingCtx); err != nil {
			w.Log.WithError(err).Warn("redis unavailable, continuing signed out")
		}
		return kv, nil
	default:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, fmt.Errorf("create home: %w", err)
		}
		var opts []store.FileOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		return store.NewFileKV(cfg.Home, opts...), nil
	}
}

func (w *Wire) client(base, name string) (*api.Client, error) {
	c, err := api.New(api.Options{
		BaseURL:     base,
		HTTP:        w.HTTP,
		Timeout:     w.Config.Timeout,
		Tokens:      w.Tokens,
		Reauth:      w.Reauth,
		Logger:      w.Log.WithField("component", name),
		RateLimit:   w.Config.RateLimit,
		RefreshSkew: w.Config.RefreshSkew,
		UserAgent:   "ustat-cli/" + Version,
	})
	if err != nil {
		return nil, fmt.Errorf("%s client: %w", name, err)
	}
	return c, nil
}
