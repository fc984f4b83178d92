package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/config"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/instaback"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/service"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/session"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/spf13/cobra"
)

var (
	apiURL      string
	proxyURL    string
	sessionPath string
	locale      string
	jsonOutput  bool
	verbose     bool

	cfg       *config.Config
	sess      *session.Store
	api       *instaback.Client
	svc       *service.Service
	publisher events.Publisher
	toaster   *ui.Toaster
)

var rootCmd = &cobra.Command{
	Use:           "planora <command>",
	Short:         "Plan events from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if publisher != nil {
			publisher.Close()
		}
	},
}

// setup loads configuration and the session, and builds the API client and
// service. Flags override environment variables.
func setup(cmd *cobra.Command) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		c.APIURL = apiURL
	}
	if flags.Changed("proxy-url") {
		c.ProxyURL = proxyURL
	}
	if flags.Changed("locale") {
		c.Locale = locale
	}
	if flags.Changed("session") {
		c.SessionPath = sessionPath
	}
	cfg = c

	if cfg.SessionPath == "" {
		if cfg.SessionPath, err = session.DefaultPath(); err != nil {
			return err
		}
	}
	if sess, err = session.Open(cfg.SessionPath); err != nil {
		return err
	}

	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}
	toaster = ui.NewToaster(os.Stderr)

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	publisher = &events.NoopPublisher{}
	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Warn("events disabled", "err", err)
		} else {
			publisher = pub
		}
	}

	api = instaback.New(instaback.Options{
		BaseURL:    cfg.APIURL,
		ProxyURL:   cfg.ProxyURL,
		ProxyToken: cfg.ProxyAuthToken,
		Tokens:     sess,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Locale:     cfg.Locale,
		Logger:     logger,
	})
	svc = service.New(api, service.Options{
		Publisher:   publisher,
		Logger:      logger,
		AssetOrigin: cfg.AssetOrigin,
	})
	return nil
}

// requireUser returns the logged-in user or an error telling the user to log in.
func requireUser() (string, error) {
	u := sess.User()
	if sess.Token() == "" || u == nil || u.ID == "" {
		return "", fmt.Errorf("not logged in (run: planora login)")
	}
	return u.ID, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend URL (default $PLANORA_API_URL)")
	rootCmd.PersistentFlags().StringVar(&proxyURL, "proxy-url", "", "proxy function URL (default $PLANORA_PROXY_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "session file (default ~/.local/state/planora/session.toml)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "language for error messages: he or en")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddGroup(
		&cobra.Group{ID: "account", Title: "Account:"},
		&cobra.Group{ID: "events", Title: "Events:"},
		&cobra.Group{ID: "planning", Title: "Planning:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Account
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)

	// Events
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(viewCmd)

	// Planning
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(pollsCmd)
	rootCmd.AddCommand(rsvpCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(galleryCmd)

	// System
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(proxyCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", instaback.UserMessage(err))
		os.Exit(1)
	}
}
