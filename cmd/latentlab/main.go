// latentlab is the command-line entry point to the experiments in this
// repository: corpus preparation, VAE training, and ICA on mixed audio.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
