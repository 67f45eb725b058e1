package page

import (
	"bytes"
	"fmt"
)

// Kind identifies the role of a page.
type Kind uint8

const (
	KindFileHeader Kind = iota + 1
	KindIndex
	KindLeaf
	KindFree
)

const (
	MagicSize = 4

	// MinPageSize is the smallest page the codec accepts.
	MinPageSize = 32
	// MaxPageSize is bounded by the u16 arena offsets.
	MaxPageSize = 0x10000
)

var magics = map[Kind][MagicSize]byte{
	KindFileHeader: {'k', 'v', '1', 'f'},
	KindIndex:      {'k', 'v', '1', 'i'},
	KindLeaf:       {'k', 'v', '1', 'l'},
	KindFree:       {'k', 'v', '1', 'x'},
}

func (k Kind) String() string {
	switch k {
	case KindFileHeader:
		return "FILE"
	case KindIndex:
		return "INDEX"
	case KindLeaf:
		return "LEAF"
	case KindFree:
		return "FREE"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Magic returns the tag stamped at offset 0 of pages of this kind.
func (k Kind) Magic() [MagicSize]byte {
	return magics[k]
}

// Page is a typed view over one page buffer.
type Page interface {
	Kind() Kind
	// Bytes returns the underlying page buffer.
	Bytes() []byte
}

// Reader and Writer are the parts of a storage medium the codec needs.
type Reader interface {
	Read(offset uint64, buf []byte) error
}

type Writer interface {
	Write(offset uint64, buf []byte) error
}

type base struct {
	buf []byte
}

func (b *base) Bytes() []byte {
	return b.buf
}

// ValidatePageSize reports whether pageSize is usable by the codec.
func ValidatePageSize(pageSize int) error {
	if pageSize < MinPageSize || pageSize > MaxPageSize || pageSize&(pageSize-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	return nil
}

// New returns a zeroed page of the given kind stamped with its magic.
// It panics on an invalid page size or kind: both are programmer errors.
func New(kind Kind, pageSize int) Page {
	switch kind {
	case KindFileHeader:
		return NewFileHeader(pageSize)
	case KindIndex:
		return NewIndex(pageSize)
	case KindLeaf:
		return NewLeaf(pageSize)
	case KindFree:
		return NewFree(pageSize)
	default:
		panic(fmt.Sprintf("page: unknown kind %d", kind))
	}
}

func newBuffer(kind Kind, pageSize int) []byte {
	if err := ValidatePageSize(pageSize); err != nil {
		panic(err)
	}
	buf := make([]byte, pageSize)
	m := kind.Magic()
	copy(buf, m[:])
	return buf
}

// FromBuffer wraps buf as a typed page after validating it. The returned
// page aliases buf.
func FromBuffer(buf []byte, pageSize int) (Page, error) {
	if len(buf) != pageSize {
		return nil, fmt.Errorf("%w: buffer is %d bytes, page size is %d", ErrCorruptPage, len(buf), pageSize)
	}

	kind, ok := kindOf(buf)
	if !ok {
		return nil, fmt.Errorf("%w: unknown magic %q", ErrCorruptPage, buf[:MagicSize])
	}

	switch kind {
	case KindFileHeader:
		h := &FileHeader{base{buf}}
		if stored := h.PageSize(); stored != uint64(pageSize) {
			return nil, fmt.Errorf("%w: file has %d, configured %d", ErrIncompatiblePageSize, stored, pageSize)
		}
		return h, nil
	case KindIndex:
		idx := &Index{node{base{buf}, childWidth}}
		if err := idx.check(); err != nil {
			return nil, err
		}
		return idx, nil
	case KindLeaf:
		leaf := &Leaf{node{base{buf}, spanSize}}
		if err := leaf.check(); err != nil {
			return nil, err
		}
		return leaf, nil
	default:
		return &Free{base{buf}}, nil
	}
}

func kindOf(buf []byte) (Kind, bool) {
	if len(buf) < MagicSize {
		return 0, false
	}
	for k, m := range magics {
		if bytes.Equal(buf[:MagicSize], m[:]) {
			return k, true
		}
	}
	return 0, false
}

// Offset returns the byte offset of page index in the medium.
func Offset(index uint64, pageSize int) uint64 {
	return index * uint64(pageSize)
}

func checkIndex(index uint64, pageSize int) error {
	if index == NullPage || index > (NullPage-uint64(pageSize))/uint64(pageSize) {
		return fmt.Errorf("%w: page index %d out of range", ErrCorruptPage, index)
	}
	return nil
}

// Load reads page index from r and validates it.
func Load(r Reader, index uint64, pageSize int) (Page, error) {
	if err := checkIndex(index, pageSize); err != nil {
		return nil, err
	}
	buf := make([]byte, pageSize)
	if err := r.Read(Offset(index, pageSize), buf); err != nil {
		return nil, err
	}
	p, err := FromBuffer(buf, pageSize)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}
	return p, nil
}

// Persist writes the full page buffer at page index.
func Persist(p Page, w Writer, index uint64) error {
	buf := p.Bytes()
	if err := checkIndex(index, len(buf)); err != nil {
		return err
	}
	return w.Write(Offset(index, len(buf)), buf)
}
