// Inspect a store file.
// Usage: go run ./cmd/inspect_kv <store.kv> [page-size]
// Example: go run ./cmd/inspect_kv data/sample.kv 4096
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	bplus "PageKV/bplustree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <store.kv> [page-size]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s data/sample.kv 4096\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]

	pageSize := bplus.DefaultPageSize
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fail(fmt.Errorf("invalid page size %q: %w", os.Args[2], err))
		}
		pageSize = n
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("PageKV store %s (page size %d)", path, pageSize)))
	if err := bplus.InspectFile(path, pageSize); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	os.Exit(1)
}
