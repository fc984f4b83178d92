package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/instaback"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/service"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in with email and password",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		googleToken, _ := cmd.Flags().GetString("google-token")

		var (
			res *model.AuthResult
			err error
		)
		if googleToken != "" {
			res, err = svc.LoginWithGoogle(cmd.Context(), googleToken)
		} else {
			if email == "" {
				if email, err = prompt("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptSecret("Password: "); err != nil {
					return err
				}
			}
			res, err = svc.Login(cmd.Context(), email, password)
		}
		if err != nil {
			return err
		}
		return startSession(cmd.Context(), res)
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create an account",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req service.RegisterRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.FullName, _ = cmd.Flags().GetString("name")
		req.Phone, _ = cmd.Flags().GetString("phone")
		var err error
		if req.Email == "" {
			if req.Email, err = prompt("Email: "); err != nil {
				return err
			}
		}
		if req.Password == "" {
			if req.Password, err = promptSecret("Password: "); err != nil {
				return err
			}
		}
		res, err := svc.Register(cmd.Context(), req)
		if err != nil {
			return err
		}
		return startSession(cmd.Context(), res)
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Forget the saved session",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the logged-in user",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		u, err := svc.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(u)
			return nil
		}
		fmt.Printf("%s <%s>\n", u.DisplayName(), u.Email)
		fmt.Printf("ID: %s\n", u.ID)
		if pending := sess.PendingJoins(); len(pending) > 0 {
			fmt.Printf("Pending joins: %d\n", len(pending))
		}
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:     "forgot-password <email>",
	Short:   "Email a password reset link",
	GroupID: "account",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.ForgotPassword(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("If the address is registered, a reset link is on its way.")
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:     "reset-password <reset-token>",
	Short:   "Set a new password using a reset token",
	GroupID: "account",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = promptSecret("New password: "); err != nil {
				return err
			}
		}
		if err := svc.ResetPassword(cmd.Context(), args[0], password); err != nil {
			return err
		}
		fmt.Println("Password updated. You can log in now.")
		return nil
	},
}

// startSession saves the auth result and redeems invite codes that were
// queued while logged out.
func startSession(ctx context.Context, res *model.AuthResult) error {
	if err := sess.SetSession(res.Token, res.User); err != nil {
		return err
	}
	if jsonOutput {
		printJSON(res.User)
	} else {
		fmt.Printf("Logged in as %s\n", ui.RenderAccent(res.User.DisplayName()))
	}
	redeemPendingJoins(ctx)
	return nil
}

func redeemPendingJoins(ctx context.Context) {
	u := sess.User()
	if u == nil {
		return
	}
	for _, pj := range sess.PendingJoins() {
		m, err := svc.JoinEvent(ctx, pj.Code, u.ID)
		switch {
		case err == nil:
			toaster.Success(fmt.Sprintf("Joined event %s", m.EventID))
		case errors.Is(err, service.ErrInviteNotFound):
			toaster.Error(fmt.Sprintf("Invite code %s is no longer valid", pj.Code))
		default:
			// Keep the code for the next login.
			toaster.Error(fmt.Sprintf("Could not join with %s: %s", pj.Code, instaback.UserMessage(err)))
			continue
		}
		_ = sess.RemovePendingJoin(pj.Code)
	}
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(label)
	}
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
	loginCmd.Flags().String("google-token", "", "log in with a Google ID token instead")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (prompted when omitted)")
	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("phone", "", "phone number")

	resetPasswordCmd.Flags().String("password", "", "new password (prompted when omitted)")
}
