package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/moodtrack/moodtrack/internal/auth"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "moodctl",
		Short: "CLI client for the mood tracking REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Mood service base URL")

	// token subcommand mints a bearer token for manual API calls
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for a user ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			secret, _ := cmd.Flags().GetString("secret")
			issuer, _ := cmd.Flags().GetString("issuer")
			ttlHours, _ := cmd.Flags().GetInt("ttl")
			if userID == "" || secret == "" {
				return fmt.Errorf("--user and --secret required")
			}
			return runToken(userID, secret, issuer, ttlHours, os.Stdout)
		},
	}
	tokenCmd.Flags().StringP("user", "u", "", "User ID to embed as subject (required)")
	tokenCmd.Flags().StringP("secret", "s", "", "HMAC signing secret (required)")
	tokenCmd.Flags().String("issuer", "moodtrack", "Token issuer")
	tokenCmd.Flags().Int("ttl", 72, "Token lifetime in hours")
	rootCmd.AddCommand(tokenCmd)

	// health subcommand probes the running service
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Probe service and database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runToken(userID, secret, issuer string, ttlHours int, out *os.File) error {
	authn := auth.NewJWTAuthenticator(secret, issuer, time.Duration(ttlHours)*time.Hour)
	token, expires, err := authn.IssueToken(userID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "expires: %s\n", expires.UTC().Format(time.RFC3339))
	return nil
}

func runHealth(baseURL string, out *os.File) error {
	client := resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second)
	for _, path := range []string{"/api/health", "/api/health/db"} {
		resp, err := client.R().Get(path)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
		fmt.Fprintf(out, "%s %s %s\n", path, resp.Status(), resp.String())
	}
	return nil
}
