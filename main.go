package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smartexpense/expense-validator/internal/api"
	"github.com/smartexpense/expense-validator/internal/category"
	"github.com/smartexpense/expense-validator/internal/config"
	"github.com/smartexpense/expense-validator/internal/extractor"
	"github.com/smartexpense/expense-validator/internal/parser"
	"github.com/smartexpense/expense-validator/internal/report"
	"github.com/smartexpense/expense-validator/internal/store"
	"github.com/smartexpense/expense-validator/internal/writer"
)

const version = "1.0.0"

func main() {
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .corrected.csv extension)")
	totalsFlag := flag.Bool("totals", false, "Print debit/credit totals and per-category sums")
	categoriesFlag := flag.String("categories", "", "Path to a keyword,category merchant dictionary CSV")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Expense Validator
Bank statement extraction and categorization engine.

Parses CSV, XLSX/XLS, and PDF bank statements into normalized,
categorized transactions and exports them as CSV.

Usage:
  expense-validator [flags] <statement.csv|statement.xlsx|statement.pdf> [more files ...]
  expense-validator -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert and categorize a statement
  expense-validator statement.pdf

  # Custom output path and totals report
  expense-validator -output=clean.csv -totals statement.xlsx

  # Use an external merchant dictionary
  expense-validator -categories=merchants.csv statement.csv

  # Run the HTTP API (PORT, DATABASE_URL, CATEGORIES_FILE from env/.env)
  expense-validator -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("expense-validator v%s\n", version)
		os.Exit(0)
	}
	if *serveFlag {
		serve()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	dict := category.Load(*categoriesFlag)
	engine := parser.NewEngine(dict, extractor.Tesseract{})

	for _, inputPath := range flag.Args() {
		if err := processFile(engine, inputPath, *outputFlag, *totalsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(engine *parser.Engine, inputPath, outputPath string, printTotals bool) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("Processing: %s\n", inputPath)

	txns, err := engine.Parse(filepath.Base(inputPath), f)
	if err != nil {
		return err
	}
	fmt.Printf("  Found %d transaction(s)\n", len(txns))

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + ".corrected.csv"
	}

	data, err := writer.Serialize(txns)
	if err != nil {
		return fmt.Errorf("CSV serialization failed: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("  Output: %s\n", outPath)

	if printTotals {
		totals := report.ComputeTotals(txns, nil, nil)
		fmt.Printf("  Total debit:  %s\n", totals.TotalDebit)
		fmt.Printf("  Total credit: %s\n", totals.TotalCredit)
		fmt.Printf("  Net:          %s\n", totals.Net)

		sums := report.SummarizeByCategory(txns)
		cats := make([]string, 0, len(sums))
		for cat := range sums {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Printf("  %-16s %s\n", cat, sums[cat])
		}
	}

	if strings.EqualFold(filepath.Ext(inputPath), ".pdf") {
		printStatementSummary(engine, inputPath)
	}

	fmt.Println("  Done.")
	return nil
}

func printStatementSummary(engine *parser.Engine, inputPath string) {
	f, err := os.Open(inputPath)
	if err != nil {
		return
	}
	defer f.Close()

	summary, err := engine.ExtractSummary(filepath.Base(inputPath), f)
	if err != nil || len(summary) == 0 {
		return
	}
	fmt.Println("  Statement summary:")
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("    %-18s %s\n", k, summary[k])
	}
}

func serve() {
	cfg := config.Load()

	dict := category.Load(cfg.CategoriesFile)
	engine := parser.NewEngine(dict, extractor.Tesseract{})

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()
		st = pg
	} else {
		fmt.Println("DATABASE_URL not set; transactions are kept in memory only")
		st = store.NewMemory()
	}

	app := fiber.New(fiber.Config{
		AppName:   "expense-validator v" + version,
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	h := &api.Handler{Engine: engine, Store: st}
	h.Register(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}
