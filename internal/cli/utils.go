// Package cli provides CLI utilities for Pagehound.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes grouped search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d pages in %dms\n\n", response.Total, response.Timing.TotalMs)
	for rank, group := range response.Groups {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.4f | Chunks: %d\n", rank+1, group.Score, len(group.Chunks))
		fmt.Fprintf(w, "URL: %s\n", group.URL)
		if group.Title != "" {
			fmt.Fprintf(w, "Title: %s\n", group.Title)
		}
		if group.Snippet != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(group.Snippet, 200))
		}
		fmt.Fprintln(w)
	}
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
