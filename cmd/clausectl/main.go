// Package main implements the clausectl CLI for manual operations against the
// clausewise HTTP server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the clausewise HTTP server
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clausectl",
	Short: "CLI for clausewise HTTP server operations",
	Long: `clausectl is a command-line interface for interacting with the clausewise HTTP server.
It provides commands for analyzing contracts, requesting clause suggestions, and checking server health.`,
	Version: version,
}

var (
	analyzeFrameworks   []string
	analyzeJurisdiction string
	analyzeName         string

	suggestLibrary    string
	suggestCategory   string
	suggestFrameworks []string
	suggestMax        int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9180", "clausewise server URL")

	analyzeCmd.Flags().StringSliceVar(&analyzeFrameworks, "framework", []string{"GDPR"}, "compliance frameworks to check")
	analyzeCmd.Flags().StringVar(&analyzeJurisdiction, "jurisdiction", "", "jurisdiction scope for rule selection")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "document name (defaults to the file name)")

	suggestCmd.Flags().StringVar(&suggestLibrary, "library", "", "clause library ID (required)")
	suggestCmd.Flags().StringVar(&suggestCategory, "category", "", "clause category to match templates against")
	suggestCmd.Flags().StringSliceVar(&suggestFrameworks, "framework", nil, "compliance frameworks for boilerplate suggestions")
	suggestCmd.Flags().IntVar(&suggestMax, "max", 0, "maximum number of suggestions (0 uses the server default)")
	_ = suggestCmd.MarkFlagRequired("library")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(healthCmd)
}

// analyzeCmd analyzes a contract file or stdin for compliance
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a contract for compliance violations",
	Long: `Analyze a contract file or stdin against compliance frameworks using the clausewise server.

Examples:
  # Analyze a file against GDPR
  clausectl analyze contract.txt

  # Analyze against several frameworks
  clausectl analyze --framework GDPR --framework HIPAA contract.txt

  # Analyze from stdin
  cat contract.txt | clausectl analyze -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// suggestCmd requests clause suggestions for a clause read from stdin or a file
var suggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Request improvement suggestions for a clause",
	Long: `Request clause improvement suggestions from the clausewise server.

The clause text is read from a file or stdin and matched against the named
template library.

Examples:
  # Suggest improvements from the standard library
  clausectl suggest --library standard --category "Data Protection" clause.txt

  # Read the clause from stdin
  echo "The party shall retain data." | clausectl suggest --library standard -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check clausewise server health",
	Long: `Check the health status of the clausewise HTTP server.

Examples:
  # Check health
  clausectl health

  # Check health on a different server
  clausectl health --server http://localhost:8080`,
	RunE: runHealth,
}

// analyzeRequest matches internal/http AnalyzeRequest
type analyzeRequest struct {
	Text         string   `json:"text"`
	DocumentName string   `json:"document_name"`
	Frameworks   []string `json:"frameworks"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
}

// suggestRequest matches internal/http SuggestRequest
type suggestRequest struct {
	LibraryID            string   `json:"library_id"`
	OriginalClause       string   `json:"original_clause"`
	Category             string   `json:"category,omitempty"`
	ComplianceFrameworks []string `json:"compliance_frameworks,omitempty"`
	MaxSuggestions       int      `json:"max_suggestions,omitempty"`
}

// healthResponse matches internal/http HealthResponse
type healthResponse struct {
	Status string `json:"status"`
}

// readInput reads content from the named file, or stdin when the argument is
// absent or "-".
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return content, "stdin", nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return content, args[0], nil
}

// postJSON sends a JSON request and pretty-prints the JSON response to stdout.
func postJSON(path string, body any) error {
	reqJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s%s", serverURL, path)
	httpReq, err := http.NewRequest("POST", url, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		// Not JSON; print as-is.
		fmt.Println(string(respBody))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

// runAnalyze handles the analyze command
func runAnalyze(cmd *cobra.Command, args []string) error {
	content, source, err := readInput(args)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return fmt.Errorf("no contract text to analyze")
	}

	name := analyzeName
	if name == "" {
		name = source
	}

	return postJSON("/api/v1/compliance/analyze", analyzeRequest{
		Text:         string(content),
		DocumentName: name,
		Frameworks:   analyzeFrameworks,
		Jurisdiction: analyzeJurisdiction,
	})
}

// runSuggest handles the suggest command
func runSuggest(cmd *cobra.Command, args []string) error {
	content, _, err := readInput(args)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return fmt.Errorf("no clause text to suggest improvements for")
	}

	return postJSON("/api/v1/suggestions", suggestRequest{
		LibraryID:            suggestLibrary,
		OriginalClause:       string(content),
		Category:             suggestCategory,
		ComplianceFrameworks: suggestFrameworks,
		MaxSuggestions:       suggestMax,
	})
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/health", serverURL)

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to %s: %v\n", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Server Status: %s\n", health.Status)
	fmt.Printf("Server URL: %s\n", serverURL)

	return nil
}
