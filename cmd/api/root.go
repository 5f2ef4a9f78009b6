package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

var (
	envFile    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:           "accident-risk",
	Short:         "Driving accident risk API and tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML, JSON or TOML config file; the environment overrides it")
}

// loadEnvFile loads a dotenv file. Only the default file may be missing.
func loadEnvFile(path string, explicit bool) error {
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
