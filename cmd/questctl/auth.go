package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/session"
	"github.com/Skotchmaster/quest_academy/internal/storage"
)

func roleFlag(teacher bool) models.Role {
	if teacher {
		return models.RoleTeacher
	}
	return models.RoleUser
}

func resultErr(res session.Result) error {
	if res.Success {
		return nil
	}
	return errors.New(res.Error)
}

func printIdentity(w io.Writer, snap session.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap.Identity)
}

func (c *cli) newLoginCommand() *cobra.Command {
	var (
		email, password   string
		teacher, remember bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Args:  cobra.NoArgs,
		Short: "Log in as a student or teacher",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = readSecret(cmd, "password"); err != nil {
					return err
				}
			}
			res := c.app.Session.Login(cmd.Context(), email, password, roleFlag(teacher), storage.PolicyFor(remember))
			if err := resultErr(res); err != nil {
				return err
			}
			snap := c.app.Session.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", snap.Identity.Username, snap.Role())
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password; prompted when empty")
	cmd.Flags().BoolVar(&teacher, "teacher", false, "use the teacher login")
	cmd.Flags().BoolVar(&remember, "remember", true, "keep the session after this process exits")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) newRegisterCommand() *cobra.Command {
	var (
		req     session.RegisterRequest
		avatar  string
		teacher bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Args:  cobra.NoArgs,
		Short: "Create an account and log in",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				var err error
				if req.Password, err = readSecret(cmd, "password"); err != nil {
					return err
				}
				if req.ConfirmPassword, err = readSecret(cmd, "confirm password"); err != nil {
					return err
				}
			}
			req.Role = roleFlag(teacher)
			req.AvatarClass = models.AvatarClass(avatar)

			if err := resultErr(c.app.Session.Register(cmd.Context(), req)); err != nil {
				return err
			}
			snap := c.app.Session.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Logged in as %s\n", snap.Identity.Username, snap.Role())
			return nil
		}),
	}
	f := cmd.Flags()
	f.StringVar(&req.Username, "username", "", "display name")
	f.StringVar(&req.Email, "email", "", "account email")
	f.StringVar(&req.Password, "password", "", "password; prompted when empty")
	f.StringVar(&req.ConfirmPassword, "confirm", "", "password confirmation")
	f.StringVar(&avatar, "avatar", "", "Warrior, Mage, Ranger, Paladin or Novice")
	f.BoolVar(&teacher, "teacher", false, "register a teacher account")
	f.StringVar(&req.Bio, "bio", "", "teacher bio")
	f.StringVar(&req.Specialization, "specialization", "", "teacher specialization")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Args:  cobra.NoArgs,
		Short: "Forget the stored session",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			c.app.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func (c *cli) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Args:  cobra.NoArgs,
		Short: "Restore the stored session and print the identity",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			snap, err := c.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			return printIdentity(cmd.OutOrStdout(), snap)
		}),
	}
}

func (c *cli) newRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Args:  cobra.NoArgs,
		Short: "Reload the student profile from the server",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			if _, err := c.requireSession(cmd.Context()); err != nil {
				return err
			}
			c.app.Session.Refresh(cmd.Context())
			return printIdentity(cmd.OutOrStdout(), c.app.Session.Snapshot())
		}),
	}
}
