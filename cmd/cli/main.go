package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kudipay/kudipay/internal/gateway"
	"github.com/kudipay/kudipay/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kudipay-cli",
		Short: "Kudipay CLI tool",
		Long:  `A command line interface for operating the Kudipay wallet service.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Kudipay API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	var databaseURL, migrationsPath string
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrationsDown(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations rolled back")
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	var authToken string
	walletGetCmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch the authenticated caller's wallet",
		Run: func(cmd *cobra.Command, args []string) {
			getWallet(authToken)
		},
	}
	walletGetCmd.Flags().StringVar(&authToken, "token", os.Getenv("KUDIPAY_TOKEN"), "Bearer token for the API")

	walletCmd.AddCommand(walletGetCmd)
	rootCmd.AddCommand(walletCmd)

	// Lock commands
	locksCmd := &cobra.Command{
		Use:   "locks",
		Short: "Withdrawal lock operations",
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Force-release stale withdrawal locks",
		Run: func(cmd *cobra.Command, args []string) {
			sweepLocks()
		},
	}

	locksCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(locksCmd)

	// Webhook commands
	webhookCmd := &cobra.Command{
		Use:   "webhook",
		Short: "Webhook operations",
	}

	var secretKey, payloadFile string
	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Sign a payload file and deliver it to the webhook endpoint",
		Long:  `Reads a raw JSON payload, signs it with the gateway secret and posts it, mimicking a gateway delivery.`,
		Run: func(cmd *cobra.Command, args []string) {
			replayWebhook(secretKey, payloadFile)
		},
	}
	replayCmd.Flags().StringVar(&secretKey, "secret", os.Getenv("PAYSTACK_SECRET_KEY"), "Gateway secret key used for signing")
	replayCmd.Flags().StringVar(&payloadFile, "file", "", "Path to the raw payload file")
	replayCmd.MarkFlagRequired("file")

	webhookCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(webhookCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getWallet(token string) {
	if token == "" {
		fmt.Println("A bearer token is required (--token or KUDIPAY_TOKEN)")
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/wallets/me", nil)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Lookup FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}

func sweepLocks() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/internal/locks/sweep", "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Sweep FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sweep complete\n")
	if released, ok := result["released"].(float64); ok {
		fmt.Printf("Released: %d\n", int64(released))
	}
}

func replayWebhook(secretKey, payloadFile string) {
	if secretKey == "" {
		fmt.Println("A signing secret is required (--secret or PAYSTACK_SECRET_KEY)")
		os.Exit(1)
	}

	payload, err := os.ReadFile(payloadFile)
	if err != nil {
		fmt.Printf("Failed to read payload: %v\n", err)
		os.Exit(1)
	}

	signature := gateway.NewVerifier(secretKey).Sign(payload)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/webhooks/paystack", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(gateway.SignatureHeader, signature)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\nResponse: %s\n", resp.StatusCode, string(body))
}
