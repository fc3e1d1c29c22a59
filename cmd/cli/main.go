package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

// errCheckFailed marks a command that ran but found a problem.
var errCheckFailed = errors.New("check failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "conta",
		Short:        "Conta CLI tool",
		Long:         `A command line interface for the conta bookkeeping service.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the conta API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(ledgerCmd(), reportsCmd(), entriesCmd(), migrateCmd())

	return rootCmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that total debits equal total credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd.OutOrStdout())
		},
	})

	return cmd
}

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Financial statements",
	}

	var from, to string
	cmd.PersistentFlags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.PersistentFlags().StringVar(&to, "to", "", "End or cutoff date (YYYY-MM-DD)")

	for _, name := range []string{"trial-balance", "income-statement", "balance-sheet"} {
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Fetch the " + name + " report",
			RunE: func(cmd *cobra.Command, args []string) error {
				q := url.Values{}
				if from != "" && name != "balance-sheet" {
					q.Set("from", from)
				}
				if to != "" {
					q.Set("to", to)
				}
				body, _, err := get("/api/v1/reports/"+name, q)
				if err != nil {
					return err
				}
				return printRawJSON(cmd.OutOrStdout(), body)
			},
		})
	}

	return cmd
}

func checkConsistency(out io.Writer) error {
	body, status, err := get("/api/v1/ledger/consistency", nil)
	if err != nil && status != http.StatusConflict {
		return err
	}

	var result struct {
		Consistent        bool        `json:"consistent"`
		TotalDebit        json.Number `json:"totalDebit"`
		TotalCredit       json.Number `json:"totalCredit"`
		UnbalancedEntries []string    `json:"unbalancedEntries"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Consistent {
		fmt.Fprintf(out, "Consistency check FAILED\n")
		fmt.Fprintf(out, "Total debit:  %s\nTotal credit: %s\n", result.TotalDebit, result.TotalCredit)
		for _, id := range result.UnbalancedEntries {
			fmt.Fprintf(out, "Unbalanced entry: %s\n", id)
		}
		return errCheckFailed
	}

	fmt.Fprintf(out, "Consistency check PASSED\n")
	fmt.Fprintf(out, "Total debit:  %s\nTotal credit: %s\n", result.TotalDebit, result.TotalCredit)
	return nil
}

// get fetches path from the API. Non-2xx answers return the body, the
// status and an error.
func get(path string, query url.Values) ([]byte, int, error) {
	u := baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, 0, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, resp.StatusCode, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	return body, resp.StatusCode, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRawJSON(out io.Writer, body []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return printJSON(out, v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
