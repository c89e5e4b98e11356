package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/config"
	"github.com/gravitrone/backoffice/cli/internal/session"
)

const loginTimeout = 15 * time.Second

type credentials struct {
	email    string
	password string
}

// promptCredentials asks for whatever was not given by flags. With
// passwordStdin the password is the first line of in.
func promptCredentials(in io.Reader, out io.Writer, email string, passwordStdin bool) (credentials, error) {
	creds := credentials{email: strings.TrimSpace(email)}

	if passwordStdin {
		if creds.email == "" {
			return credentials{}, errors.New("--email is required with --password-stdin")
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return credentials{}, fmt.Errorf("read password: %w", err)
		}
		creds.password = strings.TrimRight(line, "\r\n")
		if creds.password == "" {
			return credentials{}, errors.New("password is required")
		}
		return creds, nil
	}

	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}
	var fields []huh.Field
	if creds.email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Prompt("> ").
			Value(&creds.email).
			Validate(required))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		Prompt("> ").
		EchoMode(huh.EchoModePassword).
		Value(&creds.password).
		Validate(required))

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(false).
		WithInput(in).
		WithOutput(out)
	if err := form.Run(); err != nil {
		return credentials{}, fmt.Errorf("prompt: %w", err)
	}
	creds.email = strings.TrimSpace(creds.email)
	return creds, nil
}

// runLogin authenticates and persists the session.
func runLogin(ctx context.Context, rt *runtime, creds credentials, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	resp, err := rt.client.Login(ctx, creds.email, creds.password)
	if err != nil {
		var fields api.FieldErrors
		switch {
		case errors.As(err, &fields):
			return fmt.Errorf("login failed: %w", err)
		case api.KindOf(err) == api.KindUnauthorized:
			return errors.New("login failed: invalid email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	sess := session.New(resp.Token, resp.Username, resp.Permissions)
	if err := rt.holder.Replace(ctx, sess); err != nil {
		return err
	}
	rt.client.SetToken(sess.Token)

	fmt.Fprintf(out, "logged in as %s\n", sess.Username)
	if !sess.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "session valid until %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(out, "session saved to %s\n", config.SessionPath())
	return nil
}

// LoginCmd returns the `backoffice login` command.
func LoginCmd() *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backoffice API",
		RunE: func(c *cobra.Command, _ []string) error {
			rt, err := openRuntime(c.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			creds, err := promptCredentials(c.InOrStdin(), c.OutOrStdout(), email, passwordStdin)
			if err != nil {
				return err
			}
			return runLogin(c.Context(), rt, creds, c.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

// LogoutCmd returns the `backoffice logout` command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(c *cobra.Command, _ []string) error {
			rt, err := openRuntime(c.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.holder.Clear(c.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "logged out")
			return nil
		},
	}
}
