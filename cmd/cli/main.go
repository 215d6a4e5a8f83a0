package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"posthoc/adapters/excel"
	"posthoc/adapters/stats/engine"
	"posthoc/internal"
	"posthoc/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	file := flag.String("file", cfg.Data.TableFile, "contingency table file (.xlsx or .csv)")
	sheet := flag.String("sheet", cfg.Data.Sheet, "sheet name for Excel files")
	test := flag.String("test", cfg.Engine.Test, "pairwise test strategy (chi-square, fisher)")
	method := flag.String("correction", cfg.Engine.Correction, "p-value correction (bonferroni, holm, hochberg, hommel, BH/fdr, BY)")
	digits := flag.Int("digits", cfg.Engine.Digits, "decimal digits in the report")
	popsInCols := flag.Bool("cols", false, "populations are in columns instead of rows")
	parallel := flag.Bool("parallel", cfg.Engine.Parallel, "run pairwise tests concurrently")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "no table file given; use -file or TABLE_FILE")
		flag.Usage()
		os.Exit(2)
	}

	tbl, err := excel.NewTableReader(*file, *sheet).Read()
	if err != nil {
		log.Fatalf("read table: %v", err)
	}

	logger := internal.NewDefaultLogger()
	eng := engine.New(nil, nil, logger)

	report, err := eng.Run(context.Background(), tbl, engine.Params{
		Test:              *test,
		Correction:        *method,
		Digits:            *digits,
		PopulationsInCols: *popsInCols,
		Parallel:          *parallel,
	})
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "comparison\traw.p\tadj.p\tcramers.v")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s\t%.*f\t%.*f\t%.*f\n",
			row.Label,
			report.Digits, row.RawP,
			report.Digits, row.AdjustedP,
			report.Digits, row.CramersV,
		)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write report: %v", err)
	}
}
