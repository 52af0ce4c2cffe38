/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apismoke/apismoke/internal/fetcher"
	"github.com/apismoke/apismoke/internal/models"
	"github.com/apismoke/apismoke/internal/output"
	"github.com/apismoke/apismoke/internal/parser"
	"github.com/apismoke/apismoke/internal/runner"
	"github.com/apismoke/apismoke/internal/synth"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	specFile     string
	specPath     string
	serverURL    string
	bearerToken  string
	timeoutSecs  int
	rateLimit    float64
	filter       string
	tags         []string
	verbose      bool
	outputFormat string
	outputFile   string

	// Color helpers
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	white = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [base-url]",
	Short: "Smoke-test every GET endpoint a service declares",
	Long: `Fetch the OpenAPI document from <base-url>/openapi.json, derive one
request per declared GET endpoint, execute the requests sequentially, and
report status code and latency for each.

Endpoints whose path parameters declare a schema const, and whose query
parameters declare a const, default, or example, are fully resolvable;
anything else is reported as a violation and skipped.

Examples:
  # Smoke-test a service from its published document
  apismoke check http://localhost:8000

  # With a bearer token and a 10s per-request timeout
  apismoke check http://localhost:8000 --token $TOKEN --timeout 10

  # Use a local spec file instead of fetching one
  apismoke check http://localhost:8000 --spec-file api-spec.json

  # Export results to CSV
  apismoke check http://localhost:8000 -o csv --output-file results.csv`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	p, baseURL := loadSpec(args)

	operations, err := p.GetOperations(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting operations: %v\n", err)
		os.Exit(1)
	}

	filteredOps := filterOperations(operations, filter, tags)
	if len(filteredOps) == 0 {
		fmt.Println("No operations found matching the criteria")
		os.Exit(0)
	}

	// Synthesize request plans, printing each one as it is produced
	planned, violations, err := synth.All(p, filteredOps, func(pc models.PlannedCheck) {
		if verbose {
			printPlan(pc)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error synthesizing endpoints: %v\n", err)
		os.Exit(1)
	}
	printViolations(violations)

	token := bearerToken
	if token == "" {
		token = viper.GetString("token")
	}

	checkRunner := runner.New(runner.Config{
		Timeout:     time.Duration(timeoutSecs) * time.Second,
		BearerToken: token,
		RateLimit:   rateLimit,
	})

	summary := checkRunner.RunAll(context.Background(), planned, func(event runner.Event) {
		if event.Type != runner.EventCompleted || event.Result == nil {
			return
		}
		printResult(*event.Result)
	})

	displaySummary(summary, len(violations))

	if outputFormat != "" {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := output.ExportCheckSummary(summary, format, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting results: %v\n", err)
			os.Exit(1)
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// loadSpec resolves the OpenAPI document either from a local file or by
// fetching it from the target service, and returns the parser together with
// the base URL the requests should go to.
func loadSpec(args []string) (*parser.Parser, string) {
	baseURL := ""
	if len(args) > 0 {
		baseURL = strings.TrimSuffix(args[0], "/")
	}

	if specFile != "" {
		p, err := parser.ParseFile(specFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing OpenAPI file: %v\n", err)
			os.Exit(1)
		}
		if baseURL == "" {
			baseURL = serverURL
		}
		if baseURL == "" {
			serverURLs, err := p.GetServerURLs()
			if err == nil && len(serverURLs) > 0 {
				baseURL = serverURLs[0]
			}
		}
		if baseURL == "" {
			baseURL = "http://localhost"
		}
		return p, baseURL
	}

	if baseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: a base URL is required unless --spec-file is given")
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Fetching OpenAPI document from %s", baseURL)
	s.Start()

	f := fetcher.New(specPath, time.Duration(timeoutSecs)*time.Second)
	p, err := f.Fetch(context.Background(), baseURL)
	s.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching OpenAPI document: %v\n", err)
		os.Exit(1)
	}

	return p, baseURL
}

func filterOperations(operations []models.Operation, filterStr string, tagFilters []string) []models.Operation {
	var filtered []models.Operation

	for _, op := range operations {
		// Filter by path pattern or operation ID
		if filterStr != "" {
			if !strings.Contains(op.Path, filterStr) && !strings.Contains(op.OperationID, filterStr) {
				continue
			}
		}

		// Filter by tags
		if len(tagFilters) > 0 {
			found := false
			for _, filterTag := range tagFilters {
				for _, opTag := range op.Tags {
					if opTag == filterTag {
						found = true
						break
					}
				}
				if found {
					break
				}
			}
			if !found {
				continue
			}
		}

		filtered = append(filtered, op)
	}

	return filtered
}

func printPlan(pc models.PlannedCheck) {
	if pc.Endpoint == nil {
		fmt.Printf("plan: %s %s (method not supported yet)\n", pc.Operation.Method, pc.Operation.FullPath)
		return
	}
	fmt.Printf("plan: %s %s\n", pc.Endpoint.Method, pc.Endpoint.URL)
}

func printViolations(violations []synth.Violation) {
	if len(violations) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "Skipping %d endpoint(s) with unresolvable parameters:\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "  - %s\n", v)
	}
}

func printResult(result models.CheckResult) {
	if result.Skipped {
		fmt.Printf("Skipped: %s (%s)\n", result.Path, result.Error)
		return
	}
	fmt.Printf("Checked: %s (%s)\n", result.URL, result.Method)
	if result.StatusCode != 0 {
		fmt.Printf("Status: %d (took %.2f ms)\n", result.StatusCode, result.ElapsedMillis())
	}
	if result.Error != "" {
		fmt.Printf("Error: %s\n", result.Error)
	}
}

func displaySummary(summary models.CheckSummary, violationCount int) {
	fmt.Printf("\n%s\n", white("=== Smoke Test Results ==="))
	fmt.Printf("Total Checks: %d\n", summary.TotalChecks)
	fmt.Printf("Passed: %s\n", green(summary.Passed))
	fmt.Printf("Failed: %s\n", red(summary.Failed))
	fmt.Printf("Skipped: %d\n", summary.Skipped)
	if violationCount > 0 {
		fmt.Printf("Unresolvable: %d\n", violationCount)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&specFile, "spec-file", "", "Read the OpenAPI document from a local file instead of fetching it")
	checkCmd.Flags().StringVar(&specPath, "spec-path", fetcher.DefaultSpecPath, "Path of the OpenAPI document on the target service")
	checkCmd.Flags().StringVar(&serverURL, "server", "", "Override server URL (spec-file mode)")
	checkCmd.Flags().StringVar(&bearerToken, "token", "", "Bearer token for the Authorization header")
	checkCmd.Flags().IntVar(&timeoutSecs, "timeout", 30, "Per-request timeout in seconds (0 = none)")
	checkCmd.Flags().Float64Var(&rateLimit, "rate", 0, "Max requests per second (0 = unlimited)")
	checkCmd.Flags().StringVar(&filter, "filter", "", "Filter endpoints by path pattern or operation ID")
	checkCmd.Flags().StringSliceVar(&tags, "tags", []string{}, "Filter by OpenAPI tags (can be specified multiple times)")
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each request plan as it is synthesized")
	checkCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Export results in the given format (json or csv)")
	checkCmd.Flags().StringVar(&outputFile, "output-file", "", "Write exported results to a file instead of stdout")
}
