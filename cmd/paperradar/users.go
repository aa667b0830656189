package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered chats",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := setupCLI()
		if err != nil {
			return err
		}

		users, err := client.Users(context.Background())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users registered.")
			return nil
		}

		fmt.Printf("%s  %s  %s\n", pad("CHAT", 14), pad("PROFILE", 12), "TOPICS")
		for _, u := range users {
			fmt.Printf("%s  %s  %s\n",
				pad(fmt.Sprint(u.ChatID), 14),
				pad(u.ActiveProfile, 12),
				clip(strings.Join(u.ProfileTopics, ", "), 60))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
