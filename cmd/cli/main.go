package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amirasaad/fxconvert/infra/initializer"
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/pkg/service/conversion"
	"github.com/fatih/color"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  rates [BASE]                  fetch and print the rate table
  convert <amount> <from> <to>  convert an amount
  currencies                    list the offered currencies`

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	codeColor   = color.New(color.FgYellow)
	valueColor  = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load(".env")
	if err != nil {
		errorColor.Fprintln(stderr, "Failed to load configuration:", err)
		return 1
	}
	// stdout carries results only
	logger := initializer.NewLogger(stderr, cfg.Log)
	a := app.New(initializer.NewDeps(cfg, logger), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "rates":
		base := ""
		if len(args) > 1 {
			if !money.ParseCode(args[1]).IsValid() {
				errorColor.Fprintln(stderr, "Invalid currency code:", args[1])
				return 2
			}
			base = args[1]
		}
		return printRates(ctx, a, base, stdout, stderr)
	case "convert":
		if len(args) < 4 {
			fmt.Fprintln(stderr, "Usage: convert <amount> <from> <to>")
			return 2
		}
		for _, code := range args[2:4] {
			if !money.ParseCode(code).IsValid() {
				errorColor.Fprintln(stderr, "Invalid currency code:", code)
				return 2
			}
		}
		return convert(ctx, a, args[1], args[2], args[3], stdout, stderr)
	case "currencies":
		for _, meta := range a.Deps.CurrencyRegistry.List() {
			codeColor.Fprintf(stdout, "%-5s", meta.Code)
			fmt.Fprintf(stdout, " %-3s %s\n", meta.Symbol, meta.Name)
		}
		return 0
	default:
		errorColor.Fprintln(stderr, "Unknown command:", args[0])
		fmt.Fprintln(stderr, usage)
		return 2
	}
}

func printRates(ctx context.Context, a *app.App, base string, stdout, stderr io.Writer) int {
	table, err := a.ExchangeService.FetchRates(ctx, base)
	if err != nil {
		errorColor.Fprintln(stderr, "Error fetching rates:", err)
		return 1
	}
	headerColor.Fprintf(stdout, "Rates for 1 %s (as of %s)\n", table.Base, table.FetchedAt.Format(time.RFC3339))
	for _, code := range table.Codes() {
		rate, _ := table.Rate(code)
		codeColor.Fprintf(stdout, "%-5s", code)
		valueColor.Fprintf(stdout, " %.8g", rate)
		fmt.Fprintf(stdout, "  (%s)\n", table.Source(code))
	}
	return 0
}

func convert(ctx context.Context, a *app.App, amount, from, to string, stdout, stderr io.Writer) int {
	// no fetch for an amount that cannot be converted anyway
	if _, err := conversion.ParseAmount(amount); err != nil {
		errorColor.Fprintln(stderr, exchange.UserMessage(err))
		return 1
	}

	table, err := a.ExchangeService.FetchRates(ctx, "")
	if table == nil {
		errorColor.Fprintln(stderr, "Error fetching rates:", err)
		return 1
	}
	req := exchange.ConversionRequest{Amount: amount, From: from, To: to}
	result, err := a.ConversionService.Convert(table, req)
	if err != nil {
		msg := exchange.UserMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		errorColor.Fprintln(stderr, msg)
		return 1
	}
	fmt.Fprintf(stdout, "%s = ", result.FormattedAmount)
	valueColor.Fprintln(stdout, result.FormattedConverted)
	return 0
}
