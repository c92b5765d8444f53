package main

import (
	"context"
	"curvelab/cmd"
	"curvelab/internal/logger"
	"curvelab/internal/repository"
	"curvelab/pkg/quotefile"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var (
	startFlag string
	endFlag   string
	fileFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "script",
	Short: "offline curvelab jobs",
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "recompute matched-maturity swap rates over a date range",
	RunE: func(c *cobra.Command, args []string) error {
		start, err := time.Parse(time.DateOnly, startFlag)
		if err != nil {
			return err
		}
		end, err := time.Parse(time.DateOnly, endFlag)
		if err != nil {
			return err
		}

		apiHandler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		backfillService := cmd.InitializeBackfillService(apiHandler)
		result, err := backfillService.Run(context.Background(), start, end)
		if err != nil {
			return err
		}

		logger.New().Infof("backfill done: %d dates processed, %d failed", result.DatesProcessed, result.DatesFailed)
		return nil
	},
}

var seedRatesCmd = &cobra.Command{
	Use:   "seed-rates",
	Short: "load a market rate csv into the db",
	RunE: func(c *cobra.Command, args []string) error {
		f, err := os.Open(fileFlag)
		if err != nil {
			return err
		}
		defer f.Close()

		rates, err := quotefile.LoadMarketRates(f)
		if err != nil {
			return err
		}

		apiHandler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		tx, err := apiHandler.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		err = repository.NewMarketRateRepository().Add(tx, rates)
		if err != nil {
			return err
		}

		logger.New().Infof("loaded %d market rate rows", len(rates))
		return tx.Commit()
	},
}

var seedYieldsCmd = &cobra.Command{
	Use:   "seed-yields",
	Short: "load a bond yield csv into the db",
	RunE: func(c *cobra.Command, args []string) error {
		f, err := os.Open(fileFlag)
		if err != nil {
			return err
		}
		defer f.Close()

		yields, err := quotefile.LoadBondYields(f)
		if err != nil {
			return err
		}

		apiHandler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		tx, err := apiHandler.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		err = repository.NewBondYieldRepository().Add(tx, yields)
		if err != nil {
			return err
		}

		logger.New().Infof("loaded %d bond yield rows", len(yields))
		return tx.Commit()
	},
}

func main() {
	backfillCmd.Flags().StringVar(&startFlag, "start", "", "range start, yyyy-mm-dd")
	backfillCmd.Flags().StringVar(&endFlag, "end", "", "range end, yyyy-mm-dd")
	backfillCmd.MarkFlagRequired("start")
	backfillCmd.MarkFlagRequired("end")

	seedRatesCmd.Flags().StringVar(&fileFlag, "file", "", "csv path")
	seedRatesCmd.MarkFlagRequired("file")
	seedYieldsCmd.Flags().StringVar(&fileFlag, "file", "", "csv path")
	seedYieldsCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(backfillCmd, seedRatesCmd, seedYieldsCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
