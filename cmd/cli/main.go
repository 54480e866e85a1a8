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
		Use:   "bookledger-cli",
		Short: "BookLedger CLI tool",
		Long:  `A command line interface for interacting with the BookLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BookLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(newPartyCmd())
	rootCmd.AddCommand(newLedgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newPartyCmd() *cobra.Command {
	partyCmd := &cobra.Command{
		Use:   "party",
		Short: "Party operations",
	}

	var role, name, phone, cnic, email, address string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a customer or supplier",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/parties", map[string]any{
				"role":    role,
				"name":    name,
				"phone":   phone,
				"cnic":    cnic,
				"email":   email,
				"address": address,
			})
		},
	}
	createCmd.Flags().StringVar(&role, "role", "", "Party role: customer or supplier")
	createCmd.Flags().StringVar(&name, "name", "", "Party name")
	createCmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	createCmd.Flags().StringVar(&cnic, "cnic", "", "CNIC number")
	createCmd.Flags().StringVar(&email, "email", "", "Email address")
	createCmd.Flags().StringVar(&address, "address", "", "Postal address")
	createCmd.MarkFlagRequired("role")
	createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a party with its balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/parties/" + args[0])
		},
	}

	var listRole, search, searchBy, sortBy, order string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List parties",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/parties?" + listQuery(listRole, search, searchBy, sortBy, order))
		},
	}
	listCmd.Flags().StringVar(&listRole, "role", "", "Filter by role")
	listCmd.Flags().StringVar(&search, "search", "", "Search text")
	listCmd.Flags().StringVar(&searchBy, "search-by", "", "Search column: name, phone, cnic, address")
	listCmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort column: id, name, balance, created_at")
	listCmd.Flags().StringVar(&order, "order", "", "Sort order: asc or desc")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a party",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doDelete("/api/v1/parties/" + args[0])
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <id>",
		Short: "List a party's ledger entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/parties/" + args[0] + "/transactions")
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile <id>",
		Short: "Recompute a party's balance from its ledger entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/parties/" + args[0] + "/reconciliation")
		},
	}

	partyCmd.AddCommand(createCmd, getCmd, listCmd, deleteCmd, transactionsCmd, reconcileCmd)

	return partyCmd
}

func newLedgerCmd() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	var partyID int64
	var role, direction, amount string

	settleUpCmd := &cobra.Command{
		Use:   "settle-up",
		Short: "Record a payment between the shop and a party",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/ledger/settle-up", map[string]any{
				"party_id":  partyID,
				"role":      role,
				"direction": direction,
				"amount":    amount,
			})
		},
	}
	settleUpCmd.Flags().Int64Var(&partyID, "party", 0, "Party ID")
	settleUpCmd.Flags().StringVar(&role, "role", "", "Party role: customer or supplier")
	settleUpCmd.Flags().StringVar(&direction, "direction", "", "Payment direction, e.g. customer_paid_shop")
	settleUpCmd.Flags().StringVar(&amount, "amount", "", "Payment amount")
	settleUpCmd.MarkFlagRequired("party")
	settleUpCmd.MarkFlagRequired("role")
	settleUpCmd.MarkFlagRequired("direction")
	settleUpCmd.MarkFlagRequired("amount")

	var sourceID, receiverID int64
	var transferRole, transferAmount string

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move balance between two parties of the same role",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/ledger/transfers", map[string]any{
				"source_party_id":   sourceID,
				"receiver_party_id": receiverID,
				"role":              transferRole,
				"amount":            transferAmount,
			})
		},
	}
	transferCmd.Flags().Int64Var(&sourceID, "from", 0, "Source party ID")
	transferCmd.Flags().Int64Var(&receiverID, "to", 0, "Receiver party ID")
	transferCmd.Flags().StringVar(&transferRole, "role", "", "Party role: customer or supplier")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "Transfer amount")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("role")
	transferCmd.MarkFlagRequired("amount")

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/ledger/consistency")
		},
	}

	ledgerCmd.AddCommand(settleUpCmd, transferCmd, consistencyCmd)

	return ledgerCmd
}

func listQuery(role, search, searchBy, sortBy, order string) string {
	params := map[string]string{
		"role":      role,
		"search":    search,
		"search_by": searchBy,
		"sort_by":   sortBy,
		"order":     order,
	}

	query := ""
	for key, value := range params {
		if value == "" {
			continue
		}
		if query != "" {
			query += "&"
		}
		query += key + "=" + value
	}

	return query
}

func doGet(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doPost(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doDelete(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		fmt.Println("Deleted")
		return
	}

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		fmt.Println(string(body))
		return
	}

	printJSON(data)
}

func printJSON(data any) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		return
	}

	fmt.Println(string(out))
}
