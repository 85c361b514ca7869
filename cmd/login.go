package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and make the user's log current",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	authn, err := auth.New(e.cfg.Auth)
	if err != nil {
		die(exitUsage, err)
	}

	var username string
	if len(args) == 1 {
		username = args[0]
	} else if username, err = promptLine("Username: "); err != nil {
		die(exitUsage, err)
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		die(exitUsage, err)
	}

	sess, err := e.sessions().Login(ctx, authn, username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		die(exitUsage, "Invalid username or password.")
	}
	if err != nil {
		die(exitStorage, err)
	}
	e.log.Info("logged in", "user", sess.User, "provider", e.cfg.Auth.Provider)
	fmt.Printf("Logged in as %s.\n", sess.User)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()

	if err := e.sessions().Logout(cmd.Context()); err != nil {
		die(exitStorage, err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()

	sess, err := e.sessions().Current(cmd.Context())
	if errors.Is(err, auth.ErrNotLoggedIn) {
		die(exitUsage, "Not logged in.")
	}
	if err != nil {
		die(exitStorage, err)
	}
	fmt.Printf("%s (since %s)\n", sess.User, sess.LoggedIn.Format("2006-01-02 15:04"))
	return nil
}
