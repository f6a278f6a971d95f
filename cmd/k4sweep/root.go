package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"k4sweep/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "k4sweep",
	Short: "Constrained keystream search for the Kryptos K4 ciphertext",
	Long: "k4sweep searches for plausible decryptions of the 97-letter K4 ciphertext\n" +
		"under a repeating-keystream model constrained by the confirmed plaintext\n" +
		"islands (EAST, NORTHEAST, BERLIN, CLOCK) and the zero-shift anchors.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(phasesCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
