package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beplus/beplus/internal/credential"
	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/secrets"
	"github.com/spf13/cobra"
)

var errEmptyToken = errors.New("token is empty")

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API token",
	}

	cmd.AddCommand(newAuthLoginCmd(), newAuthLogoutCmd(), newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fromStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token from stdin: %w", err)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errEmptyToken
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := newSecretStore(cfg.Credential)
			if err != nil {
				return err
			}
			if err := store.Put(cmd.Context(), cfg.Credential.Key, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token stored under %q (%s backend).\n", cfg.Credential.Key, cfg.Credential.Backend)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the token from stdin")
	cmd.MarkFlagsMutuallyExclusive("token", "stdin")
	cmd.MarkFlagsOneRequired("token", "stdin")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := newSecretStore(cfg.Credential)
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), cfg.Credential.Key); err != nil && !errors.Is(err, secrets.ErrNotFound) {
				return fmt.Errorf("remove token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity carried by the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := newSecretStore(cfg.Credential)
			if err != nil {
				return err
			}

			token, err := credential.NewGate(store, cfg.Credential.Key).AcquireToken(cmd.Context())
			if errors.Is(err, credential.ErrAuthMissing) {
				return errors.New(reconcile.AuthMissingMessage)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			claims, err := credential.Inspect(token)
			if errors.Is(err, credential.ErrNotJWT) {
				fmt.Fprintf(out, "Signed in with an opaque token (%d characters).\n", len(token))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Identity:   %s\n", claims.Identity())
			if claims.TenantID != "" {
				fmt.Fprintf(out, "Tenant:     %s\n", claims.TenantID)
			}
			if claims.StudentID != "" {
				fmt.Fprintf(out, "Student:    %s\n", claims.StudentID)
			}
			if !claims.ExpiresAt.IsZero() {
				state := "valid"
				if claims.Expired(time.Now()) {
					state = "expired"
				}
				fmt.Fprintf(out, "Expires:    %s (%s)\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04:05"), state)
			}
			return nil
		},
	}
}
