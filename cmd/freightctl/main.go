// freightctl computes booking quotes from the command line using the same
// freight rules as the server.
//
//	freightctl quote --material "Steel Coils:10:MT:1500" --supplier-freight 12000 --advance 40
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"freightflow/domain"
	"freightflow/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage(out)
		return nil
	}
	switch args[0] {
	case "quote":
		return runQuote(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `freightctl computes FTL booking quotes.

Usage:
  freightctl quote --material NAME:WEIGHT:UNIT:RATE [--material ...]
                   --supplier-freight AMOUNT [--advance PERCENT] [--client-freight AMOUNT]
`)
}

func runQuote(args []string, out io.Writer) error {
	var (
		materials       []string
		supplierFreight string
		advance         string
		clientFreight   string
	)
	flagSet := pflag.NewFlagSet("quote", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.StringArrayVarP(&materials, "material", "m", nil, "material line as NAME:WEIGHT:UNIT:RATE_PER_MT (repeatable)")
	flagSet.StringVar(&supplierFreight, "supplier-freight", "0", "amount payable to the supplier")
	flagSet.StringVar(&advance, "advance", domain.DefaultAdvancePercentage.String(), "advance percentage of supplier freight")
	flagSet.StringVar(&clientFreight, "client-freight", "", "manual client freight, overriding the material total")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	d := domain.NewDraft(domain.OverrideSticky)
	lines := make([]domain.Material, 0, len(materials))
	for _, raw := range materials {
		m, err := parseMaterial(raw)
		if err != nil {
			return err
		}
		lines = append(lines, m)
	}
	if err := d.SetMaterials(lines); err != nil {
		return err
	}

	pct, err := decimal.NewFromString(advance)
	if err != nil {
		return fmt.Errorf("--advance: %w", err)
	}
	if err := d.SetAdvancePercentage(pct); err != nil {
		return err
	}
	sf, err := decimal.NewFromString(supplierFreight)
	if err != nil {
		return fmt.Errorf("--supplier-freight: %w", err)
	}
	if err := d.SetSupplierFreight(sf); err != nil {
		return err
	}
	if clientFreight != "" {
		cf, err := decimal.NewFromString(clientFreight)
		if err != nil {
			return fmt.Errorf("--client-freight: %w", err)
		}
		if err := d.OverrideClientFreight(cf); err != nil {
			return err
		}
	}

	computed, _ := d.ComputedClientFreight()
	fmt.Fprintf(out, "Client freight:   %s", utils.FormatINR(d.ClientFreight))
	if d.FreightOverridden {
		fmt.Fprintf(out, " (manual; materials total %s)", utils.FormatINR(computed))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Supplier freight: %s\n", utils.FormatINR(d.SupplierFreight))
	fmt.Fprintf(out, "Advance (%s%%):    %s\n", d.AdvancePercentage.String(), utils.FormatINR(d.AdvanceSupplierFreight))
	fmt.Fprintf(out, "Balance:          %s\n", utils.FormatINR(d.BalanceSupplierFreight))
	fmt.Fprintf(out, "Margin:           %s\n", utils.FormatINR(d.Margin()))
	return nil
}

// parseMaterial reads NAME:WEIGHT:UNIT:RATE. The unit may be omitted
// (NAME:WEIGHT:RATE) and defaults to MT.
func parseMaterial(raw string) (domain.Material, error) {
	parts := strings.Split(raw, ":")
	if len(parts) == 3 {
		parts = []string{parts[0], parts[1], string(domain.UnitMT), parts[2]}
	}
	if len(parts) != 4 {
		return domain.Material{}, fmt.Errorf("--material %q: want NAME:WEIGHT:UNIT:RATE", raw)
	}
	weight, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Material{}, fmt.Errorf("--material %q: weight: %w", raw, err)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(parts[3]))
	if err != nil {
		return domain.Material{}, fmt.Errorf("--material %q: rate: %w", raw, err)
	}
	unit := domain.WeightUnit(strings.ToUpper(strings.TrimSpace(parts[2])))
	if !unit.Valid() {
		return domain.Material{}, fmt.Errorf("--material %q: unit must be MT or KG", raw)
	}
	return domain.Material{
		Name:      strings.TrimSpace(parts[0]),
		Weight:    weight,
		Unit:      unit,
		RatePerMT: rate,
	}, nil
}
