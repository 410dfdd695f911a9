package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
)

// errInconsistent makes the process exit non-zero when drift is found.
var errInconsistent = errors.New("ledger is inconsistent")

var bcryptGenerate = bcrypt.GenerateFromPassword

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "love-cli",
		Short:         "Love wallet CLI tool",
		Long:          `A command line interface for operating the Love wallet API.`,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("LOVE_TOKEN"), "Bearer token (defaults to $LOVE_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations (admin)",
	}
	ledgerCmd.AddCommand(consistencyCmd(opts), reconcileCmd(opts))

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(balanceCmd(opts))

	rootCmd.AddCommand(ledgerCmd, walletCmd, hashPasswordCmd())

	return rootCmd
}

func consistencyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check that every balance equals the sum of its ledger entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ConsistencyResponse
			// 409 carries the report of an inconsistent ledger.
			if err := opts.get(cmd.Context(), "/api/v1/ledger/consistency", &report, http.StatusConflict); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.Consistent {
				fmt.Fprintln(out, "Consistency check PASSED")
				return nil
			}

			fmt.Fprintf(out, "Consistency check FAILED: %d account(s) drifted\n", len(report.Mismatches))
			for _, m := range report.Mismatches {
				fmt.Fprintf(out, "  %s recorded=%s calculated=%s difference=%s\n",
					truncate(m.AccountID, 26), m.RecordedBalance, m.CalculatedBalance, m.Difference)
			}
			return errInconsistent
		},
	}
}

func reconcileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <account-id>",
		Short: "Recompute one account's balance from its ledger entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ReconciliationResponse
			if err := opts.get(cmd.Context(), "/api/v1/ledger/accounts/"+args[0]+"/reconcile", &result); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), result)
			if !result.IsReconciled {
				return errInconsistent
			}
			return nil
		},
	}
}

func balanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the balance of the token's account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var balance dto.BalanceResponse
			if err := opts.get(cmd.Context(), "/api/v1/wallet/balance", &balance); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", balance.AccountID, balance.Balance)
			return nil
		},
	}
}

// hashPasswordCmd prints a bcrypt hash for seeding accounts by hand.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

// get decodes a JSON response into dst. Statuses other than 200 and those in
// accept are returned as errors.
func (o *options) get(ctx context.Context, path string, dst any, accept ...int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(o.baseURL, "/")+path, nil)
	if err != nil {
		return err
	}
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && !contains(accept, resp.StatusCode) {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func contains(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "failed to encode: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
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
