// Package bplus: store file inspection for debugging.
// Use InspectFile(path, pageSize) to print a human-readable dump of a store file.

package bplus

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"PageKV/page"
)

// maxShownBytes truncates long keys and values in dumps.
const maxShownBytes = 32

// InspectFile opens a store file and prints its structure to stdout.
func InspectFile(path string, pageSize int) error {
	return InspectFileTo(os.Stdout, path, pageSize)
}

// InspectFileTo writes a human-readable dump of the store file to w.
func InspectFileTo(w io.Writer, path string, pageSize int) error {
	s, err := Open(path, Options{PageSize: pageSize})
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(w, "Store file: %s\n", path)
	return s.InspectTo(w)
}

// InspectTo writes the header, every tree page level by level, and the free
// list to w.
func (s *Store) InspectTo(w io.Writer) error {
	hdr, err := s.readHeader()
	if err != nil {
		return err
	}
	p := func(format string, args ...any) { fmt.Fprintf(w, format, args...) }
	pln := func(line string) { fmt.Fprintln(w, line) }

	rootID := hdr.RootPage()
	p("  Page 0 (header): root=%s first_free=%s page_size=%d\n",
		formatPageID(rootID), formatPageID(hdr.FirstFreePage()), hdr.PageSize())

	if rootID == page.NullPage {
		pln("  (empty tree)")
	} else {
		pln("\n  Nodes (BFS):")
		pln("  ---")
		queue := []uint64{rootID}
		for level := 0; len(queue) > 0; level++ {
			if level >= maxDepth {
				return fmt.Errorf("%w: tree deeper than %d levels", ErrCorruptPage, maxDepth)
			}
			size := len(queue)
			p("  Level %d:\n", level)
			for _, id := range queue[:size] {
				pg, err := s.readPage(id)
				if err != nil {
					p("    [page %d] read error: %v\n", id, err)
					continue
				}
				switch n := pg.(type) {
				case *page.Index:
					keys := make([]string, n.Len())
					children := make([]uint64, n.Len())
					for j := range n.Len() {
						keys[j] = formatBytes(n.Key(j))
						children[j] = n.Child(j)
					}
					p("    [page %d] INDEX entries=%d keys=%v children=%v\n", id, n.Len(), keys, children)
					queue = append(queue, children...)
				case *page.Leaf:
					p("    [page %d] LEAF entries=%d free=%d\n", id, n.Len(), n.Available())
					for j := range n.Len() {
						p("      %s -> %s\n", formatBytes(n.Key(j)), formatBytes(n.Value(j)))
					}
				default:
					p("    [page %d] unexpected %v page\n", id, pg.Kind())
				}
			}
			pln("  ---")
			queue = queue[size:]
		}
	}

	free, err := s.FreePages()
	if err != nil {
		return err
	}
	p("  Free pages: %v\n", free)
	return nil
}

func formatPageID(id uint64) string {
	if id == page.NullPage {
		return "null"
	}
	return fmt.Sprintf("%d", id)
}

// formatBytes quotes printable data and hex-encodes the rest.
func formatBytes(b []byte) string {
	suffix := ""
	if len(b) > maxShownBytes {
		b, suffix = b[:maxShownBytes], "..."
	}
	if utf8.Valid(b) && printable(b) {
		return fmt.Sprintf("%q%s", b, suffix)
	}
	return "0x" + hex.EncodeToString(b) + suffix
}

func printable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}
