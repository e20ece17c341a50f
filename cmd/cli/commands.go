package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	leaderboardScope string
	clearCompetition string
)

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardScope, "scope", "global", "Leaderboard scope selector (global, competition:<id>, format:<format>, type:<type>)")
	clearCmd.Flags().StringVar(&clearCompetition, "competition", "", "Only clear scores belonging to this competition")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(classificationCmd)
	rootCmd.AddCommand(competitorsCmd)
	rootCmd.AddCommand(competitionsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Fetch the assembled leaderboard for a scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard?scope=" + url.QueryEscape(leaderboardScope))
	},
}

var classificationCmd = &cobra.Command{
	Use:   "classification <competitor>",
	Short: "Fetch the classification for a competitor by id or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/classification?competitor=" + url.QueryEscape(args[0]))
	},
}

var competitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "List the competitors in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/competitors")
	},
}

var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "List the competitions in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/competitions")
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores [competitor]",
	Short: "List score records, optionally for a single competitor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/scores"
		if len(args) == 1 {
			endpoint += "?competitor=" + url.QueryEscape(args[0])
		}
		return performGetRequest(endpoint)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Trigger processing of pending score records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear score records from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/clear"
		if clearCompetition != "" {
			endpoint += "?competitionID=" + url.QueryEscape(clearCompetition)
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
