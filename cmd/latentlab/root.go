package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "latentlab",
	Short: "Experiments in representation learning: corpus prep, VAEs, and ICA",
	Long: `latentlab bundles three experiment pipelines behind one binary:

  corpus  prepare a labeled text corpus for classifier and LM training
  vae     train a variational autoencoder on an image dataset
  ica     recover independent components from mixed audio

Every flag can also be set from a config file (latentlab.yaml in the
working directory, or --config) or from LATENTLAB_* environment
variables.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./latentlab.yaml)")
	rootCmd.PersistentFlags().String("runlog", "latentlab-runs.db", "path to the run database")

	viper.BindPFlag("runlog", rootCmd.PersistentFlags().Lookup("runlog"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("latentlab")
	}

	viper.SetEnvPrefix("latentlab")
	viper.AutomaticEnv()

	// the config file is optional
	_ = viper.ReadInConfig()
}
