package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/auth"
	"github.com/Tiliavir/work-hours-logger/internal/config"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Set a local user's password",
	Long: `passwd stores an argon2id hash of the password in the config file
under auth.users. It is used by the "local" auth provider.`,
	Args: cobra.ExactArgs(1),
	RunE: runPasswd,
}

func runPasswd(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()

	username := strings.ToLower(strings.TrimSpace(args[0]))
	if username == "" {
		die(exitUsage, "Username must not be empty.")
	}

	password, err := promptPassword("New password: ")
	if err != nil {
		die(exitUsage, err)
	}
	if password == "" {
		die(exitUsage, "Password must not be empty.")
	}
	confirm, err := promptPassword("Repeat password: ")
	if err != nil {
		die(exitUsage, err)
	}
	if confirm != password {
		die(exitUsage, "Passwords do not match.")
	}

	hash, err := auth.HashPassword(password, auth.DefaultArgon2idParams)
	if err != nil {
		die(exitStorage, err)
	}
	e.cfg.Auth.Users[username] = hash
	if err := config.Save(e.home, e.cfg); err != nil {
		die(exitStorage, err)
	}
	fmt.Printf("Password set for %s.\n", username)
	if e.cfg.Auth.Provider != auth.ProviderLocal {
		fmt.Printf("Note: auth.provider is %q; local passwords are only checked with \"local\".\n", e.cfg.Auth.Provider)
	}
	return nil
}
