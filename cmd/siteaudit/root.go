// Package main provides the entry point for the siteaudit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for siteaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siteaudit",
		Short: "URL auditing and harvesting for website migrations",
		Long: `siteaudit audits and harvests URLs for website migration QA.

It crawls a site to discover reachable pathnames, verifies that old URLs
redirect to their new destinations, enumerates canonical pathnames from
robots.txt and sitemap trees, and checks per-page SEO metadata.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewRedirectsCmd())
	cmd.AddCommand(NewSitemapCmd())
	cmd.AddCommand(NewToJSONCmd())
	cmd.AddCommand(NewSEOCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
