package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotel-folio/billing"
	"hotel-folio/config"
	"hotel-folio/receipt"
	"hotel-folio/utils"
)

// QuoteCmd prices a stay offline, without a database.
func QuoteCmd() *cobra.Command {
	var (
		price, feePct, paid float64
		checkIn, checkOut   string
		asJSON              bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute the charge breakdown for a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := utils.ParseDate(checkIn)
			if err != nil {
				return fmt.Errorf("--check-in: %w", err)
			}
			out, err := utils.ParseDate(checkOut)
			if err != nil {
				return fmt.Errorf("--check-out: %w", err)
			}
			stay := billing.Stay{CheckIn: in, CheckOut: out}
			if err := stay.Validate(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: check-out is not after check-in; billing one night")
			}

			rt := billing.RoomType{NightlyBasePrice: &price, ReservationFeePercentage: &feePct}
			bd := billing.Breakdown(rt, stay, paid)

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(bd)
			}
			fmt.Fprintf(w, "Nights:          %d\n", bd.Nights)
			fmt.Fprintf(w, "Room charges:    %s\n", receipt.FormatPeso(bd.BasePriceSubtotal))
			fmt.Fprintf(w, "Reservation fee: %s\n", receipt.FormatPeso(bd.ReservationFee))
			fmt.Fprintf(w, "Total due:       %s\n", receipt.FormatPeso(bd.TotalDue))
			fmt.Fprintf(w, "Amount paid:     %s\n", receipt.FormatPeso(bd.AmountPaid))
			fmt.Fprintf(w, "Net paid:        %s\n", receipt.FormatPeso(bd.NetPaid))
			fmt.Fprintf(w, "Balance:         %s\n", receipt.FormatPeso(bd.RemainingBalance))
			fmt.Fprintf(w, "Change:          %s\n", receipt.FormatPeso(bd.Change))
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "nightly base price")
	cmd.Flags().Float64Var(&feePct, "fee-pct", 0, "reservation fee percentage of one night")
	cmd.Flags().Float64Var(&paid, "paid", 0, "amount paid so far")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")
	return cmd
}

// MigrateCmd connects with the environment's settings, migrates and seeds.
func MigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the rate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			cfg.DBSeed = seed
			log := utils.InitLogger(cfg.IsProduction())
			defer log.Sync()

			db, err := config.ConnectDatabase(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			log.Info("schema up to date", zap.String("driver", cfg.DBDriver), zap.Bool("seeded", seed))
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "insert the default rate table when empty")
	return cmd
}
