package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/xorcrack/internal/frequency"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "xorcrack.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return st
}

func TestSaveAndGetTable(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	key := TableKey{Checksum: "abc123", Charset: "abc", CorpusPath: "/tmp/corpus.txt"}
	table := frequency.Table{'a': 0.1, 'b': 0.25, 'c': 0.05}
	if err := st.SaveTable(ctx, key, table); err != nil {
		t.Fatalf("SaveTable returned error: %v", err)
	}

	got, ok, err := st.GetTable(ctx, key.Checksum, key.Charset)
	if err != nil {
		t.Fatalf("GetTable returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if len(got) != len(table) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(table))
	}
	for r, f := range table {
		if math.Abs(got[r]-f) > 1e-12 {
			t.Fatalf("entry %q == %v, want %v", r, got[r], f)
		}
	}
}

func TestGetTableMiss(t *testing.T) {
	st := openTestStore(t)
	if _, ok, err := st.GetTable(context.Background(), "missing", "abc"); err != nil || ok {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestSaveTableReplacesExisting(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	key := TableKey{Checksum: "abc123", Charset: "ab", CorpusPath: "/tmp/corpus.txt"}

	if err := st.SaveTable(ctx, key, frequency.Table{'a': 0.5}); err != nil {
		t.Fatalf("SaveTable returned error: %v", err)
	}
	if err := st.SaveTable(ctx, key, frequency.Table{'b': 0.75}); err != nil {
		t.Fatalf("second SaveTable returned error: %v", err)
	}

	got, ok, err := st.GetTable(ctx, key.Checksum, key.Charset)
	if err != nil || !ok {
		t.Fatalf("expected a cache hit, got ok=%v err=%v", ok, err)
	}
	if _, stale := got['a']; stale {
		t.Fatalf("stale entry survived replacement")
	}
	if got['b'] != 0.75 {
		t.Fatalf("entry 'b' == %v, want 0.75", got['b'])
	}
}

func TestListTables(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveTable(ctx, TableKey{Checksum: "one", Charset: "ab", CorpusPath: "a.txt"},
		frequency.Table{'a': 0.5, 'b': 0.5}); err != nil {
		t.Fatalf("SaveTable returned error: %v", err)
	}

	infos, err := st.ListTables(ctx)
	if err != nil {
		t.Fatalf("ListTables returned error: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("listed %d tables, want 1", len(infos))
	}
	if infos[0].Checksum != "one" || infos[0].Entries != 2 {
		t.Fatalf("unexpected listing: %+v", infos[0])
	}
}
