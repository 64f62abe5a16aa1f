// Package cmd holds the threadhash command line.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unclesp1d3r/threadhash/lib/config"
	"github.com/unclesp1d3r/threadhash/runstate"
)

// Version is the threadhash release, overridden at link time.
var Version = "0.1.0" //nolint:gochecknoglobals // Set by -ldflags

var cfgFile string //nolint:gochecknoglobals // Cobra flag target

// rootCmd cracks the hashes in the input file with the words of the dictionary file.
var rootCmd = &cobra.Command{
	Use:     "threadhash",
	Version: Version,
	Short:   "Parallel crypt(3) dictionary cracker",
	Long: "threadhash tries every word of a dictionary against every stored crypt(3) hash of a\n" +
		"password file, spreading the hashes over a pool of worker threads. Each hash produces one\n" +
		"result line; per-thread and total statistics are written to stderr.",
	Example: "  threadhash -i shadow.txt -d rockyou.txt -t 8 -o cracked.txt",
	Args:    cobra.NoArgs,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.InitConfig(cfgFile)
	},
	RunE:         runCrack,
	SilenceUsage: true,
}

// Root returns the root command for main to execute.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	config.SetDefaultConfigValues()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is threadhash.yaml in the working or config directory)")

	flags := rootCmd.Flags()
	flags.StringP("input", "i", "", "hashed password input file or URL")
	flags.StringP("dictionary", "d", "", "dictionary input file or URL")
	flags.StringP("output", "o", "", "result output file (default stdout)")
	flags.IntP("threads", "t", 1, "number of worker threads (1-24)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.BoolP("nice", "n", false, "lower the scheduling priority before cracking")
	flags.Bool("progress", false, "show a progress bar on stderr")
	flags.String("status-addr", "", "serve live run status on this host:port")

	bindFlag("password_file", "input")
	bindFlag("dictionary_file", "dictionary")
	bindFlag("output_file", "output")
	bindFlag("threads", "threads")
	bindFlag("verbose", "verbose")
	bindFlag("nice", "nice")
	bindFlag("progress", "progress")
	bindFlag("status_addr", "status-addr")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
		runstate.ErrorLogger.Fatal("Error binding flag", "flag", flag, "error", err)
	}
}
