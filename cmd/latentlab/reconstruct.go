package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	lab "latentlab"
	_ "latentlab/hyperparams"
	_ "latentlab/initializers"
	_ "latentlab/operators"
	_ "latentlab/optimizers"

	"latentlab/costfuncs"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct <net-dir> <images.csv>",
	Short: "Evaluate a saved network over an image dataset",
	Long: `reconstruct loads a network previously saved by 'vae --save' and reports
its average reconstruction cost over the given images. It is a quick check
that a trained model survived the round trip to disk.`,
	Args: cobra.ExactArgs(2),
	RunE: runReconstruct,
}

func init() {
	rootCmd.AddCommand(reconstructCmd)
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	net, err := lab.Load(args[0])
	if err != nil {
		return errors.Wrapf(err, "Failed to load network from %q\n", args[0])
	}

	imgs, err := loadImages(args[1])
	if err != nil {
		return err
	}

	if len(imgs[0]) != net.InputSize() {
		return errors.Errorf("Images have %d pixels but the network takes %d inputs\n",
			len(imgs[0]), net.InputSize())
	}

	data, err := lab.Data(autoencoderData(imgs), 1)
	if err != nil {
		return err
	}

	cost, _, err := net.ChangeCost(costfuncs.CrossEntropy().NoPrint()).Test(data, nil)
	if err != nil {
		return errors.Wrapf(err, "Evaluation failed\n")
	}

	fmt.Printf("Average cost over %d images: %g\n", len(imgs), cost)
	return nil
}
