/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/apismoke/apismoke/internal/fetcher"
	"github.com/apismoke/apismoke/internal/models"
	"github.com/apismoke/apismoke/internal/synth"
	"github.com/spf13/cobra"
)

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints [base-url]",
	Short: "List the request plans without executing them",
	Long: `Fetch the OpenAPI document and print the synthesized request plan for
every declared operation, without issuing any requests. Useful to inspect
what "check" would run, and which endpoints it would skip.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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

		_, violations, err := synth.All(p, filteredOps, func(pc models.PlannedCheck) {
			printPlan(pc)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error synthesizing endpoints: %v\n", err)
			os.Exit(1)
		}
		printViolations(violations)
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)

	endpointsCmd.Flags().StringVar(&specFile, "spec-file", "", "Read the OpenAPI document from a local file instead of fetching it")
	endpointsCmd.Flags().StringVar(&specPath, "spec-path", fetcher.DefaultSpecPath, "Path of the OpenAPI document on the target service")
	endpointsCmd.Flags().StringVar(&serverURL, "server", "", "Override server URL (spec-file mode)")
	endpointsCmd.Flags().IntVar(&timeoutSecs, "timeout", 30, "Fetch timeout in seconds (0 = none)")
	endpointsCmd.Flags().StringVar(&filter, "filter", "", "Filter endpoints by path pattern or operation ID")
	endpointsCmd.Flags().StringSliceVar(&tags, "tags", []string{}, "Filter by OpenAPI tags (can be specified multiple times)")
}
