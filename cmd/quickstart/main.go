package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/raezil/linkup-go/internal/config"
	"github.com/raezil/linkup-go/internal/logger"
	linkup "github.com/raezil/linkup-go/linkup"
)

type financials struct {
	Company         string   `json:"company" jsonschema:"description=Company name"`
	FiscalYear      int      `json:"fiscalYear"`
	Revenue         float64  `json:"revenue" jsonschema:"description=Revenue in billions of USD"`
	OperatingIncome *float64 `json:"operatingIncome"`
}

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	client := linkup.NewClient(cfg.APIKey, cfg.ClientOptions(log)...)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Simple search
	resp, err := client.Search(ctx, linkup.SearchRequest{
		Q:          "Go 1.23 release",
		Depth:      linkup.DepthStandard,
		OutputType: linkup.OutputSearchResults,
	})
	if err != nil {
		fail(err)
	}
	if results, ok := resp.(*linkup.SearchResultsResponse); ok {
		for _, r := range results.Results {
			switch r := r.(type) {
			case linkup.TextSearchResult:
				fmt.Printf("[text]  %s %s\n", r.Name, r.URL)
			case linkup.ImageSearchResult:
				fmt.Printf("[image] %s %s\n", r.Name, r.URL)
			}
		}
	}

	// Structured search, schema derived from the financials type
	typed, err := linkup.SearchTyped[financials](ctx, client, linkup.SearchRequest{
		Q:              "What is Microsoft's revenue and operating income for 2024?",
		Depth:          linkup.DepthDeep,
		OutputType:     linkup.OutputStructured,
		IncludeSources: true,
	})
	if err != nil {
		fail(err)
	}
	if r, ok := typed.(*linkup.StructuredResponseWithSources[financials]); ok {
		fmt.Printf("%s FY%d revenue: %.1fB\n", r.Data.Company, r.Data.FiscalYear, r.Data.Revenue)
		if r.Data.OperatingIncome != nil {
			fmt.Printf("operating income: %.1fB\n", *r.Data.OperatingIncome)
		}
		fmt.Printf("%d sources\n", len(r.Sources))
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	if hint := linkup.RecoverySuggestion(err); hint != "" {
		fmt.Fprintln(os.Stderr, "hint:", hint)
	}
	os.Exit(1)
}
