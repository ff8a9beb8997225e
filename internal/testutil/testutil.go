// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the blackbox log fixtures used by the decoder,
// exporter and command tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/banshee-data/blackbox/internal/fsutil"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// EncodeLog concatenates the binary encoding of records.
func EncodeLog(records ...blackbox.Record) []byte {
	buf := make([]byte, 0, len(records)*blackbox.RecordSize)
	for _, r := range records {
		buf = r.AppendBinary(buf)
	}
	return buf
}

// WriteLog writes records (plus any trailing bytes) to path on fsys.
func WriteLog(t *testing.T, fsys fsutil.FileSystem, path string, records []blackbox.Record, trailing ...byte) {
	t.Helper()
	data := append(EncodeLog(records...), trailing...)
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write log fixture %s: %v", path, err)
	}
}

// ReadLines reads path from fsys and splits it on \n, dropping the empty
// element after a final newline.
func ReadLines(t *testing.T, fsys fsutil.FileSystem, path string) []string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// TwoRecordLog is the 112-byte fixture with roll P=250 in the first record.
func TwoRecordLog() []blackbox.Record {
	return []blackbox.Record{
		{LoopIteration: 0, Time: 0, Roll: blackbox.AxisTerms{P: 250}},
		{LoopIteration: 1, Time: 10},
	}
}
