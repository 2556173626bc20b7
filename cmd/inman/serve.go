package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saltyorg/inman/internal/auth"
	"github.com/saltyorg/inman/internal/database"
	"github.com/saltyorg/inman/internal/maintenance"
	"github.com/saltyorg/inman/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port        int
		bind        string
		allowSubnet string
		migrate     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and run scheduled maintenance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			if cmd.Flags().Changed("bind") {
				cfg.HTTP.Bind = bind
			}
			if cmd.Flags().Changed("allow-subnet") {
				cfg.HTTP.AllowSubnet = allowSubnet
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			allowedNet, err := web.ParseAllowSubnet(cfg.HTTP.AllowSubnet)
			if err != nil {
				return err
			}

			// Warn if binding to all interfaces without an allow list
			if (cfg.HTTP.Bind == "" || cfg.HTTP.Bind == "0.0.0.0" || cfg.HTTP.Bind == "::") && allowedNet == nil {
				log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider setting http.bind or http.allow_subnet.")
			}
			if cfg.HTTP.Username == "" {
				log.Warn().Msg("HTTP basic auth is disabled; set http.username and http.password_hash to enable it")
			}

			log.Info().
				Str("version", version).
				Str("driver", cfg.Database.Driver).
				Int("port", cfg.HTTP.Port).
				Str("bind", cfg.HTTP.Bind).
				Msg("Starting inman")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			store, err := database.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			if migrate {
				if err := store.Migrate(ctx); err != nil {
					return err
				}
			}

			scheduler := maintenance.New(store, cfg.Maintenance.Schedule)
			if err := scheduler.Start(); err != nil {
				return err
			}
			defer scheduler.Stop()

			server := web.NewServer(store, scheduler, web.Options{
				Bind:       cfg.HTTP.Bind,
				Port:       cfg.HTTP.Port,
				AllowedNet: allowedNet,
				Credentials: auth.Credentials{
					Username:     cfg.HTTP.Username,
					PasswordHash: cfg.HTTP.PasswordHash,
				},
				Version: version,
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			go func() {
				select {
				case sig := <-sigChan:
					log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
					cancel()
				case <-ctx.Done():
				}
			}()

			if err := server.Start(ctx); err != nil {
				return fmt.Errorf("server error: %w", err)
			}

			log.Info().Msg("inman stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides INMAN_HTTP__PORT)")
	cmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	cmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run migrations before serving")

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for INMAN_HTTP__PASSWORD_HASH",
		Long:  "Print a bcrypt hash for INMAN_HTTP__PASSWORD_HASH. Without an argument the password is read from the first line of stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					password = strings.TrimRight(scanner.Text(), "\r")
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
