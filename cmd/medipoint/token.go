package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/medipoint-hq/medipoint-gateway/internal/storage"
	"github.com/spf13/cobra"
)

func newTokenCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}
	cmd.AddCommand(newTokenSetCmd(rt), newTokenClearCmd(rt), newTokenShowCmd(rt))
	return cmd
}

func newTokenSetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set <token|->",
		Short: "Store the bearer token (\"-\" reads it from stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				var err error
				if token, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("token must not be empty")
			}

			gw, err := rt.open()
			if err != nil {
				return err
			}
			defer gw.Close()

			if err := gw.Store.Put(storage.TokenKey, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return nil
		},
	}
}

func newTokenClearCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, err := rt.open()
			if err != nil {
				return err
			}
			defer gw.Close()

			if err := gw.Store.Delete(storage.TokenKey); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token cleared")
			return nil
		},
	}
}

func newTokenShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Describe the stored bearer token without printing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, err := rt.open()
			if err != nil {
				return err
			}
			defer gw.Close()

			out := cmd.OutOrStdout()
			token, err := gw.Store.Get(storage.TokenKey)
			if errors.Is(err, storage.ErrNotFound) || (err == nil && strings.TrimSpace(token) == "") {
				fmt.Fprintln(out, "no token stored")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			for _, line := range describeToken(strings.TrimSpace(token), time.Now()) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// describeToken summarizes a token. JWT claims are decoded without signature
// verification since the CLI holds no key; they are informational only.
func describeToken(token string, now time.Time) []string {
	lines := []string{"token: " + maskToken(token)}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return append(lines, "format: opaque")
	}
	lines = append(lines, "format: jwt")
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		lines = append(lines, "subject: "+sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		state := "valid"
		if !exp.After(now) {
			state = "expired"
		}
		lines = append(lines, fmt.Sprintf("expires: %s (%s)", exp.UTC().Format(time.RFC3339), state))
	}
	return lines
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token from stdin: %w", err)
	}
	return line, nil
}
