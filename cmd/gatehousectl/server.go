package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gatehouse-io/gatehouse/pkg/config"
	"github.com/gatehouse-io/gatehouse/pkg/db"
	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/outbox"
	"github.com/gatehouse-io/gatehouse/pkg/server"
	"github.com/gatehouse-io/gatehouse/pkg/server/endpoints"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Gatehouse application server",
	Long: `Run the Gatehouse application server.

To run the server requires the environment variables GATEHOUSE_DATA_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		dataKeyB64, ok := os.LookupEnv("GATEHOUSE_DATA_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "GATEHOUSE_DATA_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		log := newLogger()

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		dataKey, err := base64.StdEncoding.DecodeString(dataKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad GATEHOUSE_DATA_KEY:", err)
			os.Exit(1)
		}

		cipher, err := keypair.NewSymmetric(dataKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to initiate cipher:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}
		if bind, _ := cmd.Flags().GetString("bind-address"); bind != "" {
			cfg.BindAddress = bind
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		srv, err := server.NewServer(database, cipher, cfg, log, logMailer{log: log})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to assemble server:", err)
			os.Exit(1)
		}

		endpoints.RegisterAll(srv)

		dispatcher := outbox.NewDispatcher(srv.Outbox, newSyncSink(log), log, outbox.Config{})
		if err := dispatcher.Start(); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to start outbox dispatcher:", err)
			os.Exit(1)
		}
		defer dispatcher.Stop()

		// SIGHUP re-reads the config file; `gatehousectl configuration apply`
		// relies on this.
		reload := make(chan os.Signal, 1)
		signal.Notify(reload, syscall.SIGHUP)
		go func() {
			for range reload {
				if err := config.Reload(); err != nil {
					log.WithError(err).Error("configuration reload failed")
					continue
				}
				log.Info("configuration reloaded")
			}
		}()

		log.WithField("addr", cfg.BindAddress).Info("Running server")
		log.Fatal(srv.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides configuration)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(os.Getenv("GATEHOUSE_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	return log
}

// logMailer stands in for a real delivery channel; actual email delivery is
// a downstream concern.
type logMailer struct {
	log *logrus.Logger
}

func (m logMailer) SendOTP(email, code string) error {
	m.log.WithField("email", email).Info("OTP issued")
	return nil
}

func (m logMailer) SendActivation(email, token string) error {
	m.log.WithField("email", email).Info("activation link issued")
	return nil
}

// webhookSink posts outbox payloads to the downstream subsystem named by
// GATEHOUSE_SYNC_URL.
type webhookSink struct {
	url    string
	client *http.Client
}

func (s webhookSink) Deliver(entry model.OutboxEntry) error {
	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(entry.Payload))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sync endpoint returned %s", resp.Status)
	}
	return nil
}

// logSink is used when no sync endpoint is configured; entries are marked
// dispatched after being logged.
type logSink struct {
	log *logrus.Logger
}

func (s logSink) Deliver(entry model.OutboxEntry) error {
	s.log.WithFields(logrus.Fields{"user": entry.UserID, "kind": entry.Kind}).Info("outbox entry dispatched")
	return nil
}

func newSyncSink(log *logrus.Logger) outbox.Sink {
	if url := os.Getenv("GATEHOUSE_SYNC_URL"); url != "" {
		return webhookSink{url: url, client: &http.Client{Timeout: 10 * time.Second}}
	}
	log.Warn("GATEHOUSE_SYNC_URL not set; outbox entries will be logged only")
	return logSink{log: log}
}
