package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	dataDir string
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aus",
		Short: "Backend for the AUS site: admin auth and founder content API",
		Long: `aus-server is the backend for the AUS site. It serves the admin panel API
(JWT login, admin management, password flows) and the public content API
consumed by the marketing site. One binary, SQLite-backed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./aus.yaml)")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for the SQLite database (default: ~/.aus)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("aus")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.aus")
	}

	viper.SetEnvPrefix("AUS")
	viper.AutomaticEnv()
	viper.ReadInConfig() // Ignore error - config file is optional
}

// resolveDataDir picks the SQLite data directory: the --data-dir flag, then
// the storage.data_dir config key, then ~/.aus.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if dir := viper.GetString("storage.data_dir"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return home + "/.aus"
}
