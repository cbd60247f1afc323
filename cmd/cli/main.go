package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/khata/internal/infrastructure/config"
	"github.com/iho/khata/internal/infrastructure/logger"
	"github.com/iho/khata/internal/infrastructure/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

// apiError is returned for any non-2xx response.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, strings.TrimSpace(e.Body))
}

func (c *apiClient) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.baseURL, "/")+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{Status: resp.StatusCode, Body: string(raw)}
	}

	return nil
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	client := &apiClient{}

	rootCmd := &cobra.Command{
		Use:           "khata-cli",
		Short:         "Khata CLI tool",
		Long:          `A command line interface for interacting with the Khata ledger API.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client.baseURL = baseURL
			client.http = &http.Client{Timeout: timeout}
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Khata API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		customersCmd(client),
		transactionsCmd(client),
		remindersCmd(client),
		summaryCmd(client),
		ledgerCmd(client),
		migrateCmd(),
	)

	return rootCmd
}

func customersCmd(client *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Customer operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List customers with their balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Customers []struct {
					ID                  string  `json:"id"`
					Name                string  `json:"name"`
					Type                string  `json:"type"`
					Balance             string  `json:"balance"`
					LastTransactionDate *string `json:"last_transaction_date"`
				} `json:"customers"`
			}
			if err := client.do(cmd.Context(), http.MethodGet, "/api/v1/customers", nil, nil, &resp); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE\tLAST TX")
			for _, c := range resp.Customers {
				last := "-"
				if c.LastTransactionDate != nil {
					last = *c.LastTransactionDate
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, truncate(c.Name, 24), c.Type, c.Balance, last)
			}
			return w.Flush()
		},
	}

	var id, name, phone, customerType string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer or supplier",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"id": id, "name": name, "phone": phone, "type": customerType}
			var resp map[string]any
			if err := client.do(cmd.Context(), http.MethodPost, "/api/v1/customers", body, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	createCmd.Flags().StringVar(&id, "id", "", "Customer ID (generated when empty)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	createCmd.Flags().StringVar(&customerType, "type", "CUSTOMER", "CUSTOMER or SUPPLIER")
	_ = createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := client.do(cmd.Context(), http.MethodGet, "/api/v1/customers/"+args[0], nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	statementCmd := &cobra.Command{
		Use:   "statement <id>",
		Short: "List a customer's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := client.do(cmd.Context(), http.MethodGet, "/api/v1/customers/"+args[0]+"/transactions", nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.AddCommand(listCmd, createCmd, getCmd, statementCmd)
	return cmd
}

func transactionsCmd(client *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Transaction operations",
	}

	var (
		id, txType, amount, customerID, date, note, idempotencyKey string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"type": txType, "amount": amount}
			if id != "" {
				body["id"] = id
			}
			if customerID != "" {
				body["customer_id"] = customerID
			}
			if date != "" {
				body["date"] = date
			}
			if note != "" {
				body["note"] = note
			}

			var headers map[string]string
			if idempotencyKey != "" {
				headers = map[string]string{"Idempotency-Key": idempotencyKey}
			}

			var resp map[string]any
			if err := client.do(cmd.Context(), http.MethodPost, "/api/v1/transactions", body, headers, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	addCmd.Flags().StringVar(&id, "id", "", "Transaction ID (generated when empty)")
	addCmd.Flags().StringVar(&txType, "type", "", "GIVE_CREDIT, TAKE_CREDIT, EXPENSE, PAYMENT_RECEIVED or PAYMENT_MADE")
	addCmd.Flags().StringVar(&amount, "amount", "", "Amount as a decimal string")
	addCmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	addCmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	addCmd.Flags().StringVar(&note, "note", "", "Free-form note")
	addCmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency-Key header")
	_ = addCmd.MarkFlagRequired("type")
	_ = addCmd.MarkFlagRequired("amount")

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Transactions []struct {
					ID         string  `json:"id"`
					Type       string  `json:"type"`
					Amount     string  `json:"amount"`
					Date       string  `json:"date"`
					Note       string  `json:"note"`
					CustomerID *string `json:"customer_id"`
				} `json:"transactions"`
			}
			path := fmt.Sprintf("/api/v1/transactions?limit=%d", limit)
			if err := client.do(cmd.Context(), http.MethodGet, path, nil, nil, &resp); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCUSTOMER\tNOTE")
			for _, t := range resp.Transactions {
				customer := "-"
				if t.CustomerID != nil {
					customer = *t.CustomerID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Type, t.Amount, customer, truncate(t.Note, 30))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transactions")

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func remindersCmd(client *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"reminder"},
		Short:   "Reminder operations",
	}

	var id, title, date, reminderType, amount, customerID string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"title": title, "date": date, "type": reminderType}
			if id != "" {
				body["id"] = id
			}
			if amount != "" {
				body["amount"] = amount
			}
			if customerID != "" {
				body["customer_id"] = customerID
			}

			var resp map[string]any
			if err := client.do(cmd.Context(), http.MethodPost, "/api/v1/reminders", body, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	addCmd.Flags().StringVar(&id, "id", "", "Reminder ID (generated when empty)")
	addCmd.Flags().StringVar(&title, "title", "", "Title")
	addCmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&reminderType, "type", "PERSONAL", "COLLECTION, PAYMENT or PERSONAL")
	addCmd.Flags().StringVar(&amount, "amount", "", "Optional amount")
	addCmd.Flags().StringVar(&customerID, "customer", "", "Optional customer ID")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("date")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Reminders []struct {
					ID              string `json:"id"`
					Title           string `json:"title"`
					Date            string `json:"date"`
					Type            string `json:"type"`
					EffectiveStatus string `json:"effective_status"`
				} `json:"reminders"`
			}
			if err := client.do(cmd.Context(), http.MethodGet, "/api/v1/reminders", nil, nil, &resp); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tSTATUS\tTITLE")
			for _, r := range resp.Reminders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Type, r.EffectiveStatus, truncate(r.Title, 30))
			}
			return w.Flush()
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a reminder completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := client.do(cmd.Context(), http.MethodPost, "/api/v1/reminders/"+args[0]+"/complete", nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.AddCommand(addCmd, listCmd, completeCmd)
	return cmd
}

func summaryCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show today's expense, receivable and payable totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Date            string `json:"date"`
				TodayExpense    string `json:"today_expense"`
				TotalReceivable string `json:"total_receivable"`
				TotalPayable    string `json:"total_payable"`
				NetPosition     string `json:"net_position"`
			}
			if err := client.do(cmd.Context(), http.MethodGet, "/api/v1/summary", nil, nil, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date:             %s\n", resp.Date)
			fmt.Fprintf(out, "Today's expense:  %s\n", resp.TodayExpense)
			fmt.Fprintf(out, "To receive:       %s\n", resp.TotalReceivable)
			fmt.Fprintf(out, "To pay:           %s\n", resp.TotalPayable)
			fmt.Fprintf(out, "Net:              %s\n", resp.NetPosition)
			return nil
		},
	}
}

func ledgerCmd(client *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Consistent       bool `json:"consistent"`
				CustomersChecked int  `json:"customers_checked"`
				Mismatches       []struct {
					CustomerID        string `json:"customer_id"`
					RecordedBalance   string `json:"recorded_balance"`
					CalculatedBalance string `json:"calculated_balance"`
				} `json:"mismatches"`
			}
			err := client.do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, nil, &resp)

			out := cmd.OutOrStdout()
			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				fmt.Fprintf(out, "Consistency check FAILED (%d of %d customers)\n", len(resp.Mismatches), resp.CustomersChecked)
				for _, m := range resp.Mismatches {
					fmt.Fprintf(out, "  %s: recorded %s, calculated %s\n", m.CustomerID, m.RecordedBalance, m.CalculatedBalance)
				}
				return errors.New("ledger is inconsistent")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Consistency check PASSED\n")
			fmt.Fprintf(out, "Customers checked: %d\n", resp.CustomersChecked)
			return nil
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	resolve := func() (string, string, zerolog.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return "", "", zerolog.Nop(), err
		}
		if databaseURL == "" {
			databaseURL = cfg.DatabaseURL
		}
		if path == "" {
			path = cfg.MigrationsPath
		}
		return databaseURL, path, logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr}), nil
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, dir, l, err := resolve()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(url, dir, l)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, dir, l, err := resolve()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(url, dir, l)
		},
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (defaults to DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH)")
	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
