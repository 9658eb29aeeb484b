package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/mock"
	"github.com/bloodmagesoftware/arspace/plan"
)

var (
	scanDelay  time.Duration
	scanVerify bool
)

var scanCmd = &cobra.Command{
	Use:   "scan {plan}",
	Short: "Run a simulated AR scan into a plan",
	Long: `Simulates scanning the room and writes the scanned room and measurements
into the plan, replacing what was there. Interrupting the scan with Ctrl-C
leaves the plan untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}

		delay := s.config.Scan.Delay
		if cmd.Flags().Changed("delay") {
			delay = scanDelay
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("scanning %s...", s.plan.Name)
		room, ms, err := mock.Scan(ctx, delay)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", s.plan.Name, err)
		}

		p, err := plan.New(s.plan.Name, room, ms)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", s.plan.Name, err)
		}
		if err := p.Save(s.planPath); err != nil {
			return fmt.Errorf("saving plan %s: %w", s.plan.Name, err)
		}
		log.Printf("scanned %d measurements into %s", len(ms), s.planPath)

		if scanVerify {
			return verify(ctx, cmd, p)
		}
		return nil
	},
}

func verify(ctx context.Context, cmd *cobra.Command, p *plan.Plan) error {
	report, err := mock.Verify(ctx, mock.DefaultVerifyDelay, p.Measurements)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", p.Name, err)
	}
	for _, a := range report {
		fmt.Fprintln(cmd.OutOrStdout(), a)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVar(&scanDelay, "delay", mock.DefaultScanDelay, "Simulated scan duration (default from arspace.yaml)")
	scanCmd.Flags().BoolVar(&scanVerify, "verify", false, "Run a simulated accuracy check after scanning")
}
