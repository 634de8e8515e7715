package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatehouse-io/gatehouse/pkg/db"
	gormstore "github.com/gatehouse-io/gatehouse/pkg/server/store/gorm"
)

// userRetrieveKeyCmd represents the user retrieve-key command
var userRetrieveKeyCmd = &cobra.Command{
	Use:   "retrieve-key <user_id>",
	Short: "Print a user's token-verification public key",
	Long: `Print the PEM-encoded public key used to verify tokens issued to a user.

The private half never leaves the database and is encrypted with the
service data key.

Example:
  gatehousectl user retrieve-key 4f1c...`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, userID := range args {
			publicPEM, err := retrievePublicKey(userID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to retrieve key for %s: %v\n", userID, err)
				os.Exit(1)
			}
			fmt.Print(publicPEM)
		}
	},
}

func init() {
	userCmd.AddCommand(userRetrieveKeyCmd)
}

func retrievePublicKey(userID string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	credential, err := gormstore.NewCredentialsStore(database).FetchCredential(userID)
	if err != nil {
		return "", err
	}
	if credential == nil {
		return "", fmt.Errorf("no credential found for user: %s", userID)
	}

	return string(credential.PublicKey), nil
}
