package main

import (
	"context"
	"fmt"
	"os"

	linkup "github.com/raezil/linkup-go/linkup"
)

func main() {
	apiKey := os.Getenv("LINKUP_API_KEY")
	client := linkup.NewClient(apiKey)

	// basic search
	resp, err := client.Search(context.Background(), linkup.SearchRequest{
		Q:          "What is Microsoft's revenue and operating income for 2024?",
		Depth:      linkup.DepthStandard,       // or linkup.DepthDeep
		OutputType: linkup.OutputSourcedAnswer, // or OutputSearchResults / OutputStructured
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := linkup.RecoverySuggestion(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}

	switch r := resp.(type) {
	case *linkup.SourcedAnswerResponse:
		fmt.Println(r.Answer)
		for _, s := range r.Sources {
			fmt.Printf("- %s (%s)\n", s.Name, s.URL)
		}
	case *linkup.SearchResultsResponse:
		for _, res := range r.Results {
			fmt.Println(res.Type())
		}
	}
}
