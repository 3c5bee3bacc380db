package abbrev

import (
	"sync"
	"testing"
)

func TestStoreSwap(t *testing.T) {
	s := NewStore(nil)
	if s.Table().Len() != 0 {
		t.Fatal("new store should hold an empty table")
	}

	next := btwTable()
	old := s.Swap(next)
	if old.Len() != 0 {
		t.Error("Swap should return the previous table")
	}
	if s.Table() != next {
		t.Error("Swap should publish the given table")
	}
}

func TestStoreUpdateCopies(t *testing.T) {
	s := NewStore(btwTable())
	before := s.Table()

	s.Insert("omw", "on my way")
	s.Remove("btw")

	if _, ok := before.Lookup("omw"); ok {
		t.Error("published table was mutated in place")
	}
	if _, ok := before.Lookup("btw"); !ok {
		t.Error("published table lost an entry")
	}
	if _, ok := s.Table().Lookup("omw"); !ok {
		t.Error("insert not visible in the current table")
	}
	if _, ok := s.Table().Lookup("btw"); ok {
		t.Error("remove not visible in the current table")
	}
}

func TestStoreOnChange(t *testing.T) {
	s := NewStore(nil)
	var seen []int
	s.OnChange(func(t *Table) { seen = append(seen, t.Len()) })

	s.Insert("a", "b")
	s.Swap(nil)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 0 {
		t.Errorf("unexpected notifications %v", seen)
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	s := NewStore(btwTable())
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, ok := s.Table().Lookup("btw"); !ok {
					t.Error("btw should always be present")
					return
				}
			}
		}()
	}
	for j := 0; j < 200; j++ {
		s.Insert("k", "v")
		s.Swap(btwTable())
	}
	wg.Wait()
}

func TestStoreNotifiesInPublishOrder(t *testing.T) {
	s := NewStore(nil)
	var (
		mu    sync.Mutex
		stale int
		last  *Table
	)
	s.OnChange(func(tbl *Table) {
		mu.Lock()
		defer mu.Unlock()
		if s.Table() != tbl {
			stale++
		}
		last = tbl
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Swap(btwTable())
				s.Insert("k", "v")
			}
		}()
	}
	wg.Wait()

	if stale != 0 {
		t.Errorf("%d listener calls saw a table other than the current one", stale)
	}
	if last != s.Table() {
		t.Error("last notification is not the current table")
	}
}
