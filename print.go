package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hbomb79/Trawl/internal/fetcher"
)

// printResult renders a fetch result in the requested format. The table
// format is a human-readable summary; json is the raw envelope.
func printResult(w io.Writer, result *fetcher.FetchResult, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "table":
		printTable(w, result)
		return nil
	default:
		return fmt.Errorf("unknown output format '%s' (expected table or json)", format)
	}
}

func printTable(w io.Writer, result *fetcher.FetchResult) {
	divider := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintf(w, "URL: %s\n", result.URL)
	fmt.Fprintf(w, "Videos found: %d\n", len(result.Videos))
	methods := "None"
	if len(result.MethodsUsed) > 0 {
		methods = strings.Join(result.MethodsUsed, ", ")
	}
	fmt.Fprintf(w, "Methods used: %s\n", methods)

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "Errors: %d\n", len(result.Errors))
		for _, errMessage := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", errMessage)
		}
	}
	fmt.Fprintf(w, "%s\n", divider)

	if len(result.Videos) == 0 {
		fmt.Fprintf(w, "\nNo videos found.\n")
		return
	}

	for i, video := range result.Videos {
		fmt.Fprintf(w, "\n%d. Video:\n", i+1)
		fmt.Fprintf(w, "   URL: %s\n", video.URL)
		if video.Title != "" {
			fmt.Fprintf(w, "   Title: %s\n", video.Title)
		}
		if video.Duration != nil {
			fmt.Fprintf(w, "   Duration: %d seconds\n", *video.Duration)
		}
		fmt.Fprintf(w, "   Detection method: %s\n", video.Method)
		if video.Type != "" {
			fmt.Fprintf(w, "   Type: %s\n", video.Type)
		}
	}
}

func saveResult(result *fetcher.FetchResult, path string) error {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, encoded, 0o644)
}
