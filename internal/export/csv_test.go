package export

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/banshee-data/blackbox/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "LoopIteration,Time," +
	"P_Roll,I_Roll,D_Roll,FF_Roll,P_Roll_NoFF,I_Roll_NoFF,D_Roll_NoFF," +
	"P_Pitch,I_Pitch,D_Pitch,FF_Pitch,P_Pitch_NoFF,I_Pitch_NoFF,D_Pitch_NoFF," +
	"P_Yaw,I_Yaw,D_Yaw,FF_Yaw,P_Yaw_NoFF,I_Yaw_NoFF,D_Yaw_NoFF"

func zeros(n int) string {
	return strings.TrimSuffix(strings.Repeat("0,", n), ",")
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, header+"\n", buf.String())
}

func TestWriteCSV_TwoRecordScenario(t *testing.T) {
	// 112-byte log: roll P=250 in the first record, everything else zero.
	var raw []byte
	raw = blackbox.Record{LoopIteration: 0, Time: 0, Roll: blackbox.AxisTerms{P: 250}}.AppendBinary(raw)
	raw = blackbox.Record{LoopIteration: 1, Time: 10}.AppendBinary(raw)
	require.Len(t, raw, 112)

	records := blackbox.Decode(raw)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	want := header + "\n" +
		"0,0,1,0,0,0,1,0,0," + zeros(14) + "\n" +
		"1,10," + zeros(21) + "\n"
	assert.Equal(t, want, buf.String())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestWriteCSV_ColumnCount(t *testing.T) {
	for _, n := range []int{0, 1, 7, 250} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			records := make([]blackbox.Record, n)
			for i := range records {
				records[i] = blackbox.Record{
					LoopIteration: uint32(i),
					Time:          uint32(i * 4),
					Roll:          blackbox.AxisTerms{P: float32(i), FF: 12.5},
					Yaw:           blackbox.AxisTerms{D: -float32(i)},
				}
			}

			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, records))

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			require.Len(t, lines, n+1)
			for i, line := range lines {
				assert.Len(t, strings.Split(line, ","), 23, "line %d", i)
			}
		})
	}
}

func TestWriteCSV_NoCRLF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []blackbox.Record{{}}))
	assert.NotContains(t, buf.String(), "\r")
}

// limitWriter fails once more than n bytes have been written.
type limitWriter struct {
	n       int
	written int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.n {
		return 0, errors.New("disk full")
	}
	w.written += len(p)
	return len(p), nil
}

func TestWriteCSV_WriteFailure(t *testing.T) {
	records := make([]blackbox.Record, 500)
	err := WriteCSV(&limitWriter{n: 100}, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile_Memory(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("flight.csv", []byte("stale content that must go\n"), 0644))

	records := []blackbox.Record{{LoopIteration: 5, Time: 50, Pitch: blackbox.AxisTerms{P: 100, I: 100, D: 100, FF: 100}}}
	require.NoError(t, WriteFile(mfs, "flight.csv", records))

	data, err := mfs.ReadFile("flight.csv")
	require.NoError(t, err)
	assert.Equal(t, header+"\n"+
		"5,50,"+zeros(7)+",0.4,0.4,0.4,0.4,0,0,0,"+zeros(7)+"\n", string(data))
}

func TestWriteFile_CreateFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be created as a file.
	err := WriteFile(fsutil.OSFileSystem{}, dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestWriteFile_OS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.csv")
	require.NoError(t, WriteFile(fsutil.OSFileSystem{}, path, []blackbox.Record{{}, {}}))

	data, err := fsutil.OSFileSystem{}.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}
