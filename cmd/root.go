package cmd

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hireloop/intervue/pkg/config"
)

var (
	cfgPath string
	verbose bool
)

// loadConfig resolves the effective configuration for a command run:
// .env file (if present), then the yaml file, then environment
// overrides. Missing files are not an error.
func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.Load(cfgPath)
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "intervue",
		Short: "Mock technical interviews in your terminal",
		Long: `intervue runs simulated technical interviews.

The chat command opens an interactive session against an interview
backend; the serve command runs that backend, using a local Ollama
model to evaluate answers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a yaml config file (overrides "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewChatCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewRolesCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
