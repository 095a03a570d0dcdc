package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/model"
)

func newAuthCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in to the planner service",
	}
	cmd.AddCommand(
		newLoginCmd(configPath),
		newRegisterCmd(configPath),
		newLogoutCmd(configPath),
		newWhoamiCmd(configPath),
		newAuthStatusCmd(configPath),
	)
	return cmd
}

func newLoginCmd(configPath *string) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				if email, err = prompt(cmd, in, "Email: "); err != nil {
					return err
				}
			}
			password, err := readPassword(cmd, in)
			if err != nil {
				return err
			}
			u, err := app.Client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return storeSession(cmd, app, u, email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newRegisterCmd(configPath *string) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			if name == "" {
				if name, err = prompt(cmd, in, "Name: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = prompt(cmd, in, "Email: "); err != nil {
					return err
				}
			}
			password, err := readPassword(cmd, in)
			if err != nil {
				return err
			}
			u, err := app.Client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return storeSession(cmd, app, u, email)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func storeSession(cmd *cobra.Command, app *App, u model.User, email string) error {
	if app.Client.Session() == "" {
		return fmt.Errorf("%w: server did not issue a session", apperrors.ErrNotSignedIn)
	}
	if err := app.Creds.Set(app.Client.Session(), email); err != nil {
		return err
	}
	ok(cmd.OutOrStdout(), "Signed in as "+displayName(u, email))
	return nil
}

func displayName(u model.User, fallback string) string {
	if u.Name != "" {
		return u.Name
	}
	return fallback
}

func newLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			app.Client.Logout(cmd.Context())
			if err := app.Creds.Delete(); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			// a failed lookup is "not signed in", never an error
			u, err := app.Client.Me(cmd.Context())
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in as "+u.Name)
			return nil
		},
	}
}

func newAuthStatusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the stored session comes from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			c, err := app.Creds.Get()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if c == nil {
				warn(out, "no stored session; run `studyplan auth login`")
				return nil
			}
			lines := []string{"session source: " + c.Source}
			if c.Email != "" {
				lines = append(lines, "email: "+c.Email)
			}
			if !c.CreatedAt.IsZero() {
				lines = append(lines, "since: "+c.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			panel(out, lines)
			return nil
		},
	}
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrInvalidInput, strings.TrimSuffix(label, ": "))
	}
	return line, nil
}

// readPassword reads without echo on a terminal, or a plain line otherwise.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, isFile := cmd.InOrStdin().(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return prompt(cmd, in, "Password: ")
}
