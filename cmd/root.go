/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/song-dashboard/internal/dashboard"
	"github.com/ademuri/song-dashboard/internal/dataset"
)

const envPrefix = "SONG_DASHBOARD"

var cfgFile string
var dataPath string
var verbose bool

var logger = zap.NewNop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "song-dashboard",
	Short: "Explores a table of Spotify song metadata",
	Long: `Loads a CSV or XLSX export of Spotify song metadata and shows playlist, genre and
audio-feature charts, either in the browser (serve) or on the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.song-dashboard.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&dataPath, "data", "d", "spotify_songs.csv", "Path to the song table (.csv or .xlsx)")
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))

	rootCmd.PersistentFlags().String(
		"filter-field", dashboard.DefaultFilterField, "column the bar and scatter charts group by")
	viper.BindPFlag("filter_field", rootCmd.PersistentFlags().Lookup("filter-field"))

	rootCmd.PersistentFlags().String(
		"genre-choice", dashboard.DefaultGenreChoice, "column the pie chart counts: playlist_genre or playlist_subgenre")
	viper.BindPFlag("genre_choice", rootCmd.PersistentFlags().Lookup("genre-choice"))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A missing .env is fine; the process environment is used as is.
	godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".song-dashboard" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".song-dashboard")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// requireData is a PreRunE for commands that read the song table.
func requireData(cmd *cobra.Command, args []string) error {
	if viper.GetString("data") == "" {
		return errors.New(`required flag(s) "data" not set`)
	}
	return nil
}

func loadDataset(path string) (*dataset.Dataset, error) {
	d, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded dataset",
		zap.String("path", path),
		zap.Int("rows", d.Len()),
		zap.Int("columns", len(d.Columns())))
	return d, nil
}

func loadDashboard(path string) (*dashboard.Dashboard, error) {
	d, err := loadDataset(path)
	if err != nil {
		return nil, err
	}
	db, err := dashboard.New(d)
	if err != nil {
		return nil, fmt.Errorf("building dashboard from %s: %w", path, err)
	}
	return db, nil
}
