package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ustat/internal/app"
	"ustat/internal/domain"
)

// cli holds state shared by every subcommand of one invocation.
type cli struct {
	envFile    string
	home       string
	apiURL     string
	calcURL    string
	storeKind  string
	passphrase string
	timeout    time.Duration
	output     string
	logLevel   string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	log  *logrus.Logger
	wire *app.Wire
	app  *app.App
	out  *printer
}

// Execute runs the CLI against the process's standard streams.
func Execute() error {
	root, c := newRoot(os.Stdin, os.Stdout, os.Stderr)
	err := root.Execute()
	if err != nil {
		c.report(err)
	}
	if c.wire != nil {
		_ = c.wire.Close()
	}
	return err
}

func newRoot(stdin io.Reader, stdout, stderr io.Writer) (*cobra.Command, *cli) {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "ustat",
		Short:         "Command-line client for the Ustat legal assistant",
		Version:       app.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.wire != nil {
				return c.wire.Close()
			}
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.envFile, "env-file", ".env", "dotenv file to load before reading USTAT_* variables")
	pf.StringVar(&c.home, "home", "", "config dir (default ~/.ustat)")
	pf.StringVar(&c.apiURL, "api", "", "main API base URL")
	pf.StringVar(&c.calcURL, "calc-api", "", "calculation API base URL")
	pf.StringVar(&c.storeKind, "store", "", "token store backend: file, memory or redis")
	pf.StringVarP(&c.passphrase, "passphrase", "p", "", "passphrase to encrypt the token file")
	pf.DurationVar(&c.timeout, "timeout", 0, "per-request timeout")
	pf.StringVarP(&c.output, "output", "o", "text", "output format: text, json or yaml")
	pf.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		c.statusCmd(),
		c.onboardingCmd(),
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.forgotPasswordCmd(),
		c.resetPasswordCmd(),
		c.profileCmd(),
		c.blogCmd(),
		c.packagesCmd(),
		c.subscriptionCmd(),
		c.paymentCmd(),
		c.calcCmd(),
	)
	return root, c
}

// setup builds the app context from env, .env and flags, in rising order
// of precedence.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig(c.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("home") {
		cfg.Home = c.home
	}
	if flags.Changed("api") {
		cfg.APIURL = c.apiURL
	}
	if flags.Changed("calc-api") {
		cfg.CalcURL = c.calcURL
	}
	if flags.Changed("store") {
		cfg.Store = c.storeKind
	}
	if flags.Changed("passphrase") {
		cfg.Passphrase = c.passphrase
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	out, err := newPrinter(c.stdout, c.output)
	if err != nil {
		return err
	}
	c.out = out

	c.log, err = app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.log.SetOutput(c.stderr)

	c.wire, err = app.NewWire(cmd.Context(), cfg, c.log)
	if err != nil {
		return err
	}
	c.app = app.New(c.wire)
	return nil
}

// report prints err for a person. Domain errors get their user-facing
// wording; the full chain goes to the debug log.
func (c *cli) report(err error) {
	if c.log != nil {
		c.log.WithError(err).Debug("command failed")
	}
	fmt.Fprintln(c.stderr, "Error:", friendly(err))
}

func friendly(err error) string {
	for _, kind := range []error{
		domain.ErrValidation,
		domain.ErrNotAuthenticated,
		domain.ErrUnauthorized,
		domain.ErrNetwork,
		domain.ErrServer,
		domain.ErrStorage,
	} {
		if errors.Is(err, kind) {
			return domain.UserMessage(err)
		}
	}
	return err.Error()
}

func (c *cli) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
