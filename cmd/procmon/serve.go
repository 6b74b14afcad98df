package main

import (
	"context"
	"io/fs"
	"time"

	"github.com/hightemp/process-manager/monitor/app"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

func newServeCmd() *cobra.Command {
	var (
		configName string
		configDir  string
		envFile    string
		stopWait   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the monitor and serve its API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnv(envFile); err != nil {
				return err
			}
			restApp, err := app.NewRestApp(configName, configDir)
			if err != nil {
				return errors.Wrap(err, "build app")
			}

			startCtx, cancel := context.WithTimeout(cmd.Context(), stopWait)
			defer cancel()
			if err := restApp.Start(startCtx); err != nil {
				return errors.Wrap(err, "start app")
			}

			sig := <-restApp.Done()
			logger.Logger(cmd.Context()).Info().Msgf("received %s, shutting down", sig)

			stopCtx, stopCancel := context.WithTimeout(context.Background(), stopWait)
			defer stopCancel()
			return restApp.Stop(stopCtx)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&configName, "config-name", "procmon_config", "config file name without extension")
	flags.StringVar(&configDir, "config-dir", "", "directory holding the config file")
	flags.StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded before the config is read")
	flags.DurationVar(&stopWait, "timeout", 15*time.Second, "start and stop timeout")
	return cmd
}

// loadEnv reads a dotenv file into the environment. A missing default file
// is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	return errors.Wrapf(err, "load %s", path)
}
