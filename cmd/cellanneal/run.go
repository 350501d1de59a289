package main

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cellanneal/cellanneal/anneal"
	"github.com/cellanneal/cellanneal/dispatch"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/lineagecsv"
	"github.com/cellanneal/cellanneal/render"
)

func newRunCmd() *cobra.Command {
	var (
		configPath        string
		initialColonyPath string
		startTemp         float64
		endTemp           float64
		autoTemp          bool
		useDist           bool
		outputDir         string
		bestfitDir        string
		residualDir       string
		lineageCSVPath    string
		keep              int
		strategyName      string
		workers           int
		seed              int64
	)

	cmd := &cobra.Command{
		Use:   "run IMAGES...",
		Short: "Run the full sliding-window annealing optimization",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadRunInputs(args, configPath, initialColonyPath)
			if err != nil {
				return err
			}

			strategy, err := parseStrategy(strategyName)
			if err != nil {
				return err
			}

			if autoTemp {
				newDriver := func() *anneal.Driver {
					rng := rand.New(rand.NewSource(seed))
					driverCfg := in.cfg.DriverConfig(in.width, in.height, useDist, 0, 0)
					return buildDriver(in, driverCfg, rng, nil)
				}
				startTemp, endTemp = anneal.Calibrate(newDriver, defaultIterationsPerCell)
				log.Infof("auto-temp: using start=%g end=%g", startTemp, endTemp)
			}

			driverCfg := in.cfg.DriverConfig(in.width, in.height, useDist, startTemp, endTemp)

			if workers <= 1 {
				return runSingle(in, driverCfg, seed, outputDir, bestfitDir, residualDir, lineageCSVPath)
			}
			return runDispatch(in, driverCfg, seed, workers, strategy, keep, outputDir, bestfitDir, residualDir, lineageCSVPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML simulation config")
	cmd.Flags().StringVar(&initialColonyPath, "initial-colony", "", "path to the YAML initial colony")
	cmd.Flags().Float64Var(&startTemp, "start-temp", 1.0, "starting annealing temperature")
	cmd.Flags().Float64Var(&endTemp, "end-temp", 1e-3, "ending annealing temperature")
	cmd.Flags().BoolVar(&autoTemp, "auto-temp", false, "calibrate start/end temperature instead of using the flags above")
	cmd.Flags().BoolVar(&useDist, "dist", false, "use the distance-weighted objective")
	cmd.Flags().StringVar(&outputDir, "output", "output", "directory for outline-overlay images")
	cmd.Flags().StringVar(&bestfitDir, "bestfit", "bestfit", "directory for best-fit synth images")
	cmd.Flags().StringVar(&residualDir, "residual", "", "directory for residual heatmaps (omit to disable)")
	cmd.Flags().StringVar(&lineageCSVPath, "lineage-csv", "lineage.csv", "path to the lineage CSV output")
	cmd.Flags().IntVar(&keep, "keep", 1, "number of surviving colonies to keep (workers > 1 only)")
	cmd.Flags().StringVar(&strategyName, "strategy", "best", "survivor selection strategy: best, worst, or extreme")
	cmd.Flags().IntVar(&workers, "workers", 1, "number of independent colonies to anneal in parallel")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed")

	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("initial-colony")

	return cmd
}

func parseStrategy(name string) (dispatch.Strategy, error) {
	switch name {
	case "best":
		return dispatch.BestWins, nil
	case "worst":
		return dispatch.WorstWins, nil
	case "extreme":
		return dispatch.ExtremeWins, nil
	default:
		return 0, fmt.Errorf("unrecognized strategy %q (want best, worst, or extreme)", name)
	}
}

func newOutputWriter(in *runInputs, outputDir, bestfitDir, residualDir string) (*render.Writer, error) {
	return render.NewWriter(render.Config{
		BestfitDir:   bestfitDir,
		OverlayDir:   outputDir,
		ResidualDir:  residualDir,
		ImageNames:   in.imageNames,
		Real:         in.real,
		Width:        in.width,
		Height:       in.height,
		ResidualVmin: in.cfg.Residual.Vmin,
		ResidualVmax: in.cfg.Residual.Vmax,
	})
}

// runSingle anneals one colony, streaming each frame's output through
// writer as it leaves the trailing edge of the window (spec.md §4.H
// step 8), the way the driver is designed to be used by default.
func runSingle(in *runInputs, driverCfg anneal.Config, seed int64, outputDir, bestfitDir, residualDir, lineageCSVPath string) error {
	writer, err := newOutputWriter(in, outputDir, bestfitDir, residualDir)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	driver := buildDriver(in, driverCfg, rng, writer)
	if err := driver.Run(); err != nil {
		return fmt.Errorf("anneal: %w", err)
	}

	cost := totalCost(driver.Lineage(), in.real, in.width, in.height, driverCfg.OverlapCost, driverCfg.CellImportance)
	log.Infof("final cost: %g", cost)

	if err := lineagecsv.Write(lineageCSVPath, driver.Lineage(), in.imageNames); err != nil {
		return fmt.Errorf("lineage csv: %w", err)
	}
	return nil
}

// runDispatch anneals workers independent colonies headlessly (no
// streaming writer, since the window-writer contract assumes a single
// winning lineage), picks the keep survivors under strategy, then
// replays each survivor's frames into its own numbered subdirectory.
func runDispatch(in *runInputs, driverCfg anneal.Config, seed int64, workers int, strategy dispatch.Strategy, keep int, outputDir, bestfitDir, residualDir, lineageCSVPath string) error {
	funcs := make([]dispatch.WorkerFunc, workers)
	for i := 0; i < workers; i++ {
		workerSeed := seed + int64(i)
		funcs[i] = func() (*lineage.Lineage, float64) {
			rng := rand.New(rand.NewSource(workerSeed))
			driver := buildDriver(in, driverCfg, rng, nil)
			if err := driver.Run(); err != nil {
				log.Errorf("anneal: worker seed %d: %v", workerSeed, err)
				return nil, math.Inf(1)
			}
			l := driver.Lineage()
			return l, totalCost(l, in.real, in.width, in.height, driverCfg.OverlapCost, driverCfg.CellImportance)
		}
	}

	results := dispatch.Run(funcs, workers, strategy, keep)
	log.Infof("dispatch: kept %d of %d colonies", len(results), workers)

	for rank, result := range results {
		if result.Lineage == nil {
			continue
		}
		log.Infof("dispatch: survivor %d (worker %d) final cost %g", rank, result.Index, result.Cost)

		runOutputDir := filepath.Join(outputDir, fmt.Sprintf("run%d", rank))
		runBestfitDir := filepath.Join(bestfitDir, fmt.Sprintf("run%d", rank))
		runResidualDir := ""
		if residualDir != "" {
			runResidualDir = filepath.Join(residualDir, fmt.Sprintf("run%d", rank))
		}

		writer, err := newOutputWriter(in, runOutputDir, runBestfitDir, runResidualDir)
		if err != nil {
			return err
		}
		for frameIdx := 0; frameIdx < result.Lineage.FrameCount(); frameIdx++ {
			if err := writer.WriteFrame(result.Lineage, frameIdx); err != nil {
				return fmt.Errorf("render survivor %d frame %d: %w", rank, frameIdx, err)
			}
		}

		csvPath := lineageCSVPath
		if len(results) > 1 {
			ext := filepath.Ext(lineageCSVPath)
			base := lineageCSVPath[:len(lineageCSVPath)-len(ext)]
			csvPath = fmt.Sprintf("%s-run%d%s", base, rank, ext)
		}
		if err := lineagecsv.Write(csvPath, result.Lineage, in.imageNames); err != nil {
			return fmt.Errorf("lineage csv for survivor %d: %w", rank, err)
		}
	}
	return nil
}
