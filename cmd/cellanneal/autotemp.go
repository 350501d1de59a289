package main

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/cellanneal/cellanneal/anneal"
)

const defaultIterationsPerCell = 2000

func newAutoTempCmd() *cobra.Command {
	var configPath, initialColonyPath string
	var seed int64

	cmd := &cobra.Command{
		Use:   "auto-temp IMAGES...",
		Short: "Calibrate the start/end annealing temperatures against the leading window",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadRunInputs(args, configPath, initialColonyPath)
			if err != nil {
				return err
			}

			newDriver := func() *anneal.Driver {
				rng := rand.New(rand.NewSource(seed))
				driverCfg := in.cfg.DriverConfig(in.width, in.height, false, 0, 0)
				return buildDriver(in, driverCfg, rng, nil)
			}

			startTemp, endTemp := anneal.Calibrate(newDriver, defaultIterationsPerCell)
			cmd.Printf("start-temp: %g\n", startTemp)
			cmd.Printf("end-temp: %g\n", endTemp)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML simulation config")
	cmd.Flags().StringVar(&initialColonyPath, "initial-colony", "", "path to the YAML initial colony")
	cmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for the calibration trials")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("initial-colony")

	return cmd
}
