// Package page implements the on-disk page format of the store.
//
// A store is a sequence of fixed-size pages. Every page starts with a 4-byte
// magic tag naming its role:
//
//	kv1f  file header (always page 0): root page, first free page, page size
//	kv1i  index page: ordered (separator key, child page) entries
//	kv1l  leaf page: ordered (key, value) entries
//	kv1x  free page: link to the next free page
//
// Index and leaf pages share one layout:
//
//	magic[4] len[8] keySpans[len*4] aux[len*w] arena...
//
// keySpans holds big-endian u16 (start, end) pairs relative to the arena.
// For a leaf, aux holds the value spans (w=4); for an index page it holds
// the child page words (w=8). All integers are big-endian and every field is
// read and written at an explicit offset.
package page
