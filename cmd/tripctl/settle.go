package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/format"
	"github.com/josh-kwaku/travelmate/internal/ledger"
	"github.com/josh-kwaku/travelmate/internal/repository"
	"github.com/josh-kwaku/travelmate/internal/service"
)

type settleCmd struct {
	trip string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "print balances and suggested transfers for a trip" }
func (*settleCmd) Usage() string {
	return `tripctl settle -trip <uuid>

  Computes the trip's settlement from its current expenses and completed
  transfers. Nothing is written.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trip, "trip", "", "Trip id.")
}

func (c *settleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tripID, err := uuid.Parse(c.trip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -trip %q: %v\n", c.trip, err)
		return subcommands.ExitUsageError
	}

	cfg, db, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	trips := repository.NewTripRepository(db)
	tripSvc := service.NewTripService(trips, db)
	settleSvc := service.NewSettlementService(
		repository.NewSnapshotRepository(db),
		trips,
		repository.NewTransferRepository(db),
		nil,
		db,
	)

	trip, err := tripSvc.Get(ctx, tripID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := settleSvc.Compute(ctx, tripID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := printSettlement(os.Stdout, trip, s, cfg.BaseCurrency); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printSettlement(w io.Writer, trip *domain.Trip, s *ledger.Settlement, base string) error {
	fmt.Fprintf(w, "%s (%s)\n\n", trip.Title, trip.ID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PARTICIPANT\tPAID\tSHARE\tBALANCE\t")
	for _, p := range s.Positions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			p.Name,
			format.Money(p.FinalPaid, base),
			format.Money(p.TotalShare, base),
			format.Money(p.Balance, base),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("printSettlement: %w", err)
	}

	fmt.Fprintln(w)
	if len(s.Suggestions) == 0 {
		fmt.Fprintln(w, "everyone is settled")
		return nil
	}
	for _, t := range s.Suggestions {
		fmt.Fprintf(w, "%s -> %s  %s\n", t.From, t.To, format.Units(t.Amount, base))
	}
	return nil
}
