// Copyright 2025 taxifare Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhenghaoz/taxifare/base/log"
	"github.com/zhenghaoz/taxifare/cmd/version"
	"github.com/zhenghaoz/taxifare/config"
	"github.com/zhenghaoz/taxifare/taxi"
	"go.uber.org/zap"
)

var taxifareCommand = &cobra.Command{
	Use:   "taxifare",
	Short: "Train, evaluate and persist a taxi fare regression model.",
	Run: func(cmd *cobra.Command, args []string) {
		// Show version
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)

		// Load config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		log.Logger().Info("load config", zap.String("config", configPath))
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		if err = taxi.Run(conf); err != nil {
			log.Logger().Fatal("failed to run lifecycle", zap.Error(err))
		}
	},
}

func init() {
	log.AddFlags(taxifareCommand.PersistentFlags())
	taxifareCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	taxifareCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	taxifareCommand.PersistentFlags().BoolP("version", "v", false, "taxifare version")
}

func main() {
	if err := taxifareCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
