// @title         talentmatch API
// @version       1.0
// @description   CV and job description analysis with candidate matching.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer JWT, "Bearer <JWT>" or "<JWT>".
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const app = "talentmatch"

var (
	// Used for flags.
	cfgFile string
	logJSON bool
	debug   bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentmatch analyses CVs and job descriptions and matches candidates to jobs",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cfgFile != "" {
				return os.Setenv("CONFIG_FILE", cfgFile)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file (overrides CONFIG_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&logJSON, "json", "j", false, "json format for logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
