package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unclesp1d3r/threadhash/lib/config"
	"github.com/unclesp1d3r/threadhash/runstate"
)

var (
	errRequired       = errors.New("a value is required")
	errInvalidThreads = fmt.Errorf("threads must be a whole number from 1 to %d", config.MaxThreads)
)

// prompter is the part of promptui.Prompt the init command drives.
type prompter interface {
	Run() (string, error)
}

// newPrompt builds the prompt for one setting. Tests replace it to feed canned answers.
var newPrompt = func(label, current string, validate promptui.ValidateFunc) prompter { //nolint:gochecknoglobals // Swapped in tests
	return &promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
		Validate:  validate,
	}
}

// settingPrompt describes one setting the init command asks for.
type settingPrompt struct {
	key      string
	label    string
	validate promptui.ValidateFunc
}

var initPrompts = []settingPrompt{ //nolint:gochecknoglobals // Prompt table
	{key: "password_file", label: "Password file (one crypt(3) hash per line)", validate: validateRequired},
	{key: "dictionary_file", label: "Dictionary file or URL", validate: validateRequired},
	{key: "threads", label: fmt.Sprintf("Worker threads (1-%d)", config.MaxThreads), validate: validateThreads},
}

// initCmd asks for the main settings and writes them to a config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a threadhash config file",
	Long: "Prompt for the password file, dictionary and thread count, then write them along with any\n" +
		"settings from flags or THREADHASH_* environment variables to a config file. Prompts are\n" +
		"skipped when stdin is not a terminal or --non-interactive is given.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("path")
		if err != nil {
			return err
		}

		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		nonInteractive, err := cmd.Flags().GetBool("non-interactive")
		if err != nil {
			return err
		}

		if !nonInteractive && isatty.IsTerminal(os.Stdin.Fd()) {
			if err := promptForSettings(); err != nil {
				return err
			}
		}

		return writeConfig(path, force)
	},
}

func init() {
	initCmd.Flags().String("path", "", "config file to write")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	initCmd.Flags().Bool("non-interactive", false, "write the current settings without prompting")
	rootCmd.AddCommand(initCmd)
}

// promptForSettings asks for each setting in turn, offering the current value as the default,
// and stores the answers in viper.
func promptForSettings() error {
	for _, p := range initPrompts {
		value, err := newPrompt(p.label, viper.GetString(p.key), p.validate).Run()
		if err != nil {
			runstate.Logger.Error("Prompt failed", "setting", p.key, "error", err)
			return fmt.Errorf("prompt for %s: %w", p.key, err)
		}

		value = strings.TrimSpace(value)
		if p.key == "threads" {
			threads, _ := strconv.Atoi(value) // validated above
			viper.Set(p.key, threads)

			continue
		}

		viper.Set(p.key, value)
	}

	return nil
}

func validateRequired(input string) error {
	if strings.TrimSpace(input) == "" {
		return errRequired
	}

	return nil
}

func validateThreads(input string) error {
	threads, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || threads < 1 || threads > config.MaxThreads {
		return errInvalidThreads
	}

	return nil
}

func writeConfig(path string, force bool) error {
	if path == "" {
		var err error

		path, err = config.DefaultConfigFile()
		if err != nil {
			return err
		}
	}

	if err := config.WriteConfig(path, force); err != nil {
		return err
	}

	runstate.Logger.Info("Wrote config file", "path", path)

	return nil
}
