// Root command for the mpm CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/magitools/mpm/internal/paths"
	"github.com/magitools/mpm/pkg/mpm"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
)

// Values loaded from config.yaml by PersistentPreRunE so all
// subcommands can use them.
var (
	configBackend string
	configDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "mpm",
	Short: "mpm creates and stores passwords in encrypted databases",
	Long: `mpm is a local password manager. Each database is a single file in
the data directory; every cell of the file is encrypted with a master
passphrase that is asked for per invocation and never stored.`,
	Version:       mpm.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configBackend = cfg.GetString(cfgKeyBackend)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding database files (default: current directory)")

	rootCmd.AddCommand(listDBCmd)
	rootCmd.AddCommand(createDBCmd)
	rootCmd.AddCommand(openDBCmd)
	rootCmd.AddCommand(deleteDBCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > MPM_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > MPM_DATA_DIR env > CWD.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
