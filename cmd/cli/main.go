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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lending-cli",
		Short: "Lending engine CLI tool",
		Long:  `A command line interface for interacting with the lending engine API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the lending engine API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Loan commands
	loanCmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan account operations",
	}
	loanCmd.AddCommand(loanGetCmd())
	loanCmd.AddCommand(loanBalancesCmd())
	loanCmd.AddCommand(loanDerivedCmd())
	loanCmd.AddCommand(loanCloseCmd())
	loanCmd.AddCommand(loanWriteOffCmd())
	rootCmd.AddCommand(loanCmd)

	// Schedule commands
	schedulesCmd := &cobra.Command{
		Use:   "schedules",
		Short: "Schedule operations",
	}
	schedulesCmd.AddCommand(schedulesRunCmd())
	rootCmd.AddCommand(schedulesCmd)

	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loanGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show a loan account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/v1/loans/" + args[0])
		},
	}
}

func loanBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <account-id>",
		Short: "Show the balance snapshot of a loan account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/v1/loans/" + args[0] + "/balances")
		},
	}
}

func loanDerivedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derived <account-id>",
		Short: "Show derived parameters (EMI, remaining term, payoff amount)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/v1/loans/" + args[0] + "/derived")
		},
	}
}

func loanCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <account-id>",
		Short: "Close a fully repaid loan account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/v1/loans/"+args[0]+"/close", nil)
		},
	}
}

func loanWriteOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-off <account-id>",
		Short: "Write off a loan account, zeroing outstanding debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/v1/loans/"+args[0]+"/write-off", nil)
		},
	}
}

func schedulesRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run all due scheduled events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/v1/schedules/run", nil)
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/health")
		},
	}
}

func doGet(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func doPost(path string, body []byte) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		fmt.Println(string(body))
	} else {
		printJSON(doc)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request rejected (status %d)", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
