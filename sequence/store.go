package sequence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"sync"
)

// A Store represents a collection of named Sequences. A Store can be used
// simultaneously from multiple goroutines: sequences are copied on the way in
// and on the way out, so callers own what they get.
type Store struct {
	m  map[string]*Sequence
	mu sync.RWMutex
}

// NewStore creates and intializes a new Store.
func NewStore() *Store {
	return &Store{m: make(map[string]*Sequence)}
}

// Add adds a copy of x to the store using key as its identifier.
// If a Sequence already exists for the identifier it is silently replaced with the new
// Sequence.
func (s *Store) Add(key string, x *Sequence) {
	s.mu.Lock()
	s.m[key] = x.Clone()
	s.mu.Unlock()
}

// Get returns a copy of the Sequence associated to key. The second return value is
// true if the key exists in the store and false if not.
func (s *Store) Get(key string) (*Sequence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	x, ok := s.m[key]
	if !ok {
		return nil, false
	}
	return x.Clone(), true
}

// Delete removes the Sequence associated to key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// Len returns the number of sequences in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Keys returns the identifiers known in the store in increasing order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Dump allows to export the store as a slice of bytes. Each entry is encoded
// as its key, its chunk size, its strategy and its canonical spec.
func (s *Store) Dump() ([]byte, error) {
	var buf bytes.Buffer
	container := make([]byte, binary.MaxVarintLen64)
	write := func(data []byte) {
		n := binary.PutVarint(container, int64(len(data)))
		buf.Write(container[:n])
		buf.Write(data)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		x := s.m[k]
		write([]byte(k))
		n := binary.PutVarint(container, int64(x.chunkSize))
		buf.Write(container[:n])
		n = binary.PutUvarint(container, uint64(x.strategy))
		buf.Write(container[:n])
		write([]byte(x.String()))
	}
	return buf.Bytes(), nil
}

// Load loads the content of a store previously exported using the Dump method.
// The store is left untouched if data cannot be decoded.
func (s *Store) Load(data []byte) error {
	m := make(map[string]*Sequence)
	i := 0
	next := func() ([]byte, error) {
		v, n := binary.Varint(data[i:])
		if n <= 0 || v < 0 || v > int64(len(data)-i-n) {
			return nil, errors.New("cannot decode the store")
		}
		i += n
		field := data[i : i+int(v)]
		i += int(v)
		return field, nil
	}
	for i < len(data) {
		key, err := next()
		if err != nil {
			return err
		}
		size, n := binary.Varint(data[i:])
		if n <= 0 {
			return errors.New("cannot decode the store")
		}
		i += n
		strategy, n := binary.Uvarint(data[i:])
		if n <= 0 || strategy >= uint64(strategyUnknown) {
			return errors.New("cannot decode the store")
		}
		i += n
		spec, err := next()
		if err != nil {
			return err
		}
		x, err := NewFromSpec(string(spec))
		if err != nil {
			return err
		}
		x.SetChunkSize(int(size))
		x.SetChunkStrategy(Strategy(strategy))
		m[string(key)] = x
	}
	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
	return nil
}
