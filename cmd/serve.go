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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ademuri/song-dashboard/internal/server"
)

var listenAddr string
var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serves the dashboard over HTTP",
	Long:    `Loads the song table once, then serves the selector page and the chart JSON until interrupted.`,
	Args:    cobra.NoArgs,
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := serve(ctx, viper.GetString("data"), viper.GetString("listen"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", ":8050", "address to listen on")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(ctx context.Context, dataPath string, addr string) error {
	db, err := loadDashboard(dataPath)
	if err != nil {
		return err
	}

	s, err := server.New(db, logger)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("Starting dashboard", zap.String("data", dataPath), zap.String("listen", addr))
	return s.Run(ctx, addr)
}
