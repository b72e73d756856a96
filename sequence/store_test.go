package sequence

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestStoreAdd(t *testing.T) {
	store := NewStore()
	want := MustNew("1-10x2")
	store.Add("s1", want)
	got, ok := store.m["s1"]
	if !ok {
		t.Fatalf("key should exist in store")
	}
	if got == want {
		t.Fatalf("pointer values should not be equal")
	}
	if !assertSequencesEqual(got, want) {
		t.Fatalf("\ngot  %+v\nwant %+v", got, want)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	store.Add("s1", MustNew(1))
	store.Delete("s1")
	if _, ok := store.m["s1"]; ok {
		t.Fatalf("key should not exist in store")
	}
	if n := store.Len(); n != 0 {
		t.Fatalf("got length %d, want 0", n)
	}
}

func TestStoreGet(t *testing.T) {
	store := NewStore()
	want := MustNew("1-10, 14, 20-48x4")
	want.SetChunkSize(4)
	store.Add("s1", want)
	got, ok := store.Get("s1")
	if !ok {
		t.Fatalf("got %t, want true", ok)
	}
	if got == want {
		t.Fatalf("pointer values should not be equal")
	}
	if !assertSequencesEqual(got, want) {
		t.Fatalf("\ngot  %+v\nwant %+v", got, want)
	}
	got.SetChunkSize(1)
	if x, _ := store.Get("s1"); x.ChunkSize() != 4 {
		t.Fatalf("got chunk size %d, want 4", x.ChunkSize())
	}
	if _, ok = store.Get("s2"); ok {
		t.Fatalf("got %t, want false", ok)
	}
}

func TestStoreKeys(t *testing.T) {
	store := NewStore()
	for _, k := range []string{"k3", "k1", "k2"} {
		store.Add(k, MustNew(1))
	}
	got := fmt.Sprint(store.Keys())
	if want := "[k1 k2 k3]"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestStoreDumpLoad(t *testing.T) {
	src := NewStore()
	s1 := MustNew("1-100")
	s1.SetChunkSize(10)
	s1.SetChunkStrategy(StrategyCycle)
	s2 := MustNew("-5--1,7,20-48x4")
	s2.SetChunkStrategy(StrategyProgressions)
	src.Add("k1", s1)
	src.Add("k11", s2)
	dump, err := src.Dump()
	if err != nil {
		t.Fatalf("got error %s, want error nil", err)
	}
	dst := NewStore()
	dst.Add("stale", MustNew(1))
	if err := dst.Load(dump); err != nil {
		t.Fatalf("got error %s, want error nil", err)
	}
	if n := dst.Len(); n != 2 {
		t.Fatalf("got length %d, want 2", n)
	}
	for _, k := range []string{"k1", "k11"} {
		want, _ := src.Get(k)
		got, ok := dst.Get(k)
		if !ok {
			t.Fatalf("key %s should exist in store", k)
		}
		if !assertSequencesEqual(got, want) {
			t.Fatalf("key %s:\ngot  %+v\nwant %+v", k, got, want)
		}
	}
}

func TestStoreLoadInvalid(t *testing.T) {
	src := NewStore()
	src.Add("k1", MustNew("1-10"))
	dump, _ := src.Dump()
	tests := []struct {
		id   int
		data []byte
	}{
		{1, dump[:len(dump)-1]},
		{2, []byte{0x7f}},
		{3, append([]byte{0x2, 'k', 0x0, 0x9}, dump[4:]...)},
		{4, append(binary.AppendVarint(nil, math.MaxInt64), 'k')},
	}
	for _, tt := range tests {
		dst := NewStore()
		dst.Add("kept", MustNew(1))
		if err := dst.Load(tt.data); err == nil {
			t.Fatalf("test %d: got error nil, want error", tt.id)
		}
		if _, ok := dst.Get("kept"); !ok {
			t.Fatalf("test %d: store should be left untouched", tt.id)
		}
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	store.Add("shot", MustNew("1-100"))
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(size int) {
			defer wg.Done()
			s, _ := store.Get("shot")
			s.SetChunkSize(size * 10)
			if got, want := s.ChunkCount(), ceilDiv(100, size*10); got != want {
				t.Errorf("size %d: got %d chunks, want %d", size*10, got, want)
			}
			store.Add(fmt.Sprintf("shot_%d", size), s)
		}(i)
	}
	wg.Wait()
	if n := store.Len(); n != 9 {
		t.Fatalf("got length %d, want 9", n)
	}
}

func assertSequencesEqual(x, y *Sequence) bool {
	if x.String() != y.String() || x.chunkSize != y.chunkSize || x.strategy != y.strategy {
		return false
	}
	if len(x.frames) != len(y.frames) {
		return false
	}
	for i := range x.frames {
		if x.frames[i] != y.frames[i] {
			return false
		}
	}
	return true
}
