package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/repository"
	"github.com/josh-kwaku/travelmate/internal/service"
)

type ratesCmd struct {
	set string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "print or change the currency rate table" }
func (*ratesCmd) Usage() string {
	return `tripctl rates [-set CODE=RATE]

  Prints every currency with its rate to the base currency. With -set, the
  rate is changed first. Expenses already recorded keep the rate they were
  written with.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "Set a rate before printing, e.g. USD=1350.")
}

func (c *ratesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		code string
		rate decimal.Decimal
	)
	if c.set != "" {
		var err error
		if code, rate, err = parseRateAssignment(c.set); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	cfg, db, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	svc := service.NewCurrencyService(repository.NewCurrencyRepository(db), cfg.BaseCurrency, db)

	if code != "" {
		if err := svc.SetRate(ctx, code, rate); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	rates, err := svc.List(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := printRates(os.Stdout, rates, cfg.BaseCurrency); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

var errBadAssignment = errors.New("expected CODE=RATE")

func parseRateAssignment(s string) (string, decimal.Decimal, error) {
	code, raw, ok := strings.Cut(s, "=")
	code = strings.ToUpper(strings.TrimSpace(code))
	if !ok || len(code) != 3 {
		return "", decimal.Zero, fmt.Errorf("parseRateAssignment: %q: %w", s, errBadAssignment)
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !rate.IsPositive() {
		return "", decimal.Zero, fmt.Errorf("parseRateAssignment: %q: rate must be a positive number: %w", s, errBadAssignment)
	}
	return code, rate, nil
}

func printRates(w io.Writer, rates []domain.CurrencyRate, base string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CODE\tRATE TO %s\n", base)
	for _, r := range rates {
		fmt.Fprintf(tw, "%s\t%s\n", r.Code, r.RateToBase.String())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("printRates: %w", err)
	}
	return nil
}
