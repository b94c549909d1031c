package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	partyID string
)

var rootCmd = &cobra.Command{
	Use:   "rendezvous-cli",
	Short: "A CLI to interact with the rendezvous server",
	Long: `A command-line interface for making requests to the various endpoints
of the rendezvous server, acting as the party given by --as.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&partyID, "as", os.Getenv("RENDEZVOUS_PARTY_ID"), "The party id to send requests as")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
