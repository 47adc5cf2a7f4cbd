package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestGenLogWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewGenLogWriter(dir, "run1")
	if err != nil {
		t.Fatalf("NewGenLogWriter: %v", err)
	}

	steps := []string{"clear", "platform", "plot", "report"}
	for _, s := range steps {
		if err := w.Write(Entry{RunID: "run1", Step: s, Detail: map[string]any{"n": 1}}); err != nil {
			t.Fatalf("Write(%s): %v", s, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Write(Entry{Step: "late"}); err == nil {
		t.Fatal("expected write-after-close to fail")
	}

	f, err := os.Open(filepath.Join(dir, "gen-run1.jsonl.zst"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	var got []string
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		if e.At.IsZero() || e.RunID != "run1" {
			t.Fatalf("entry missing fields: %+v", e)
		}
		got = append(got, e.Step)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != len(steps) {
		t.Fatalf("read %d entries, want %d", len(got), len(steps))
	}
	for i := range steps {
		if got[i] != steps[i] {
			t.Fatalf("entry %d = %s, want %s", i, got[i], steps[i])
		}
	}
}

func TestNewGenLogWriter_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewGenLogWriter(dir, "dup")
	if err != nil {
		t.Fatalf("NewGenLogWriter: %v", err)
	}
	defer w.Close()
	if _, err := NewGenLogWriter(dir, "dup"); err == nil {
		t.Fatal("expected error reopening an existing run log")
	}
}
