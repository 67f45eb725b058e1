package bplus

import (
	"bytes"
	"fmt"

	"PageKV/page"
)

// Get copies the value stored under key into out. It returns the value
// length and whether the key exists. If out is too short the length is still
// returned together with ErrBufferTooSmall, so the caller can retry.
func (s *Store) Get(key, out []byte) (int, bool, error) {
	leaf, i, err := s.find(key)
	if err != nil || leaf == nil {
		return 0, false, err
	}
	v := leaf.Value(i)
	if len(out) < len(v) {
		return len(v), true, fmt.Errorf("%w: value is %d bytes, buffer is %d", ErrBufferTooSmall, len(v), len(out))
	}
	return copy(out, v), true, nil
}

// Lookup returns a copy of the value stored under key.
func (s *Store) Lookup(key []byte) ([]byte, bool, error) {
	leaf, i, err := s.find(key)
	if err != nil || leaf == nil {
		return nil, false, err
	}
	return bytes.Clone(leaf.Value(i)), true, nil
}

// find returns the leaf holding key and its position, or a nil leaf.
func (s *Store) find(key []byte) (*page.Leaf, int, error) {
	hdr, err := s.readHeader()
	if err != nil {
		return nil, 0, err
	}
	root := hdr.RootPage()
	if root == page.NullPage {
		return nil, 0, nil
	}
	_, _, leaf, err := s.findLeaf(root, key)
	if err != nil {
		return nil, 0, err
	}
	i, found := leaf.Find(key)
	if !found {
		return nil, 0, nil
	}
	return leaf, i, nil
}
