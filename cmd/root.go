/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apismoke",
	Short: "Smoke-test a running service from its OpenAPI document",
	Long: `apismoke is an ad-hoc API health-checking tool.

It fetches the OpenAPI document a service publishes about itself
(conventionally at /openapi.json), derives a concrete request for every
GET endpoint from the declared parameters, issues each request once, and
reports status code and latency.`,
}

func Execute() {
	cobra.OnInitialize(func() {
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		viper.SetEnvPrefix("apismoke")
		viper.AutomaticEnv()
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				log.Fatalf("Error reading config file: %v", err)
			}
		}
	})
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
