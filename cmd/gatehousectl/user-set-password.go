package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse-io/gatehouse/pkg/db"
	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	gormstore "github.com/gatehouse-io/gatehouse/pkg/server/store/gorm"
)

// userSetPasswordCmd represents the user set-password command
var userSetPasswordCmd = &cobra.Command{
	Use:   "set-password <user_id>",
	Short: "Reset a user's password",
	Long: `Reset a user's password from the operator console.

Without --password a random password is generated and printed to STDOUT.
All of the user's active tokens are revoked.

Example:
  gatehousectl user set-password 4f1c...
  gatehousectl user set-password 4f1c... --password 'hunter2!'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")

		newPassword, err := setPassword(args[0], password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set password: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Password updated for user %s; active tokens revoked\n", args[0])
		if password == "" {
			fmt.Println(newPassword)
		}
	},
}

func init() {
	userCmd.AddCommand(userSetPasswordCmd)
	userSetPasswordCmd.Flags().StringP("password", "p", "", "New password (random if omitted)")
}

func setPassword(userID, password string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	users := gormstore.NewUsersStore(database)
	user, err := users.FetchUserByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("user not found: %s", userID)
	}

	if password == "" {
		random, err := keypair.RandomBytes(12)
		if err != nil {
			return "", err
		}
		password = base64.RawURLEncoding.EncodeToString(random)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := users.UpdatePassword(userID, hash); err != nil {
		return "", err
	}

	// A password reset invalidates any outstanding refresh token.
	if err := gormstore.NewCredentialsStore(database).ClearTokens(userID); err != nil {
		return "", err
	}

	return password, nil
}
