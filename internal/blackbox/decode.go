package blackbox

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/banshee-data/blackbox/internal/fsutil"
	"github.com/banshee-data/blackbox/internal/monitoring"
)

// cursor reads little-endian fields from buf, refusing any read that would
// run past the end.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) readUint32() (uint32, bool) {
	if c.off < 0 || len(c.buf)-c.off < FIELD_SIZE {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(c.buf[c.off : c.off+FIELD_SIZE])
	c.off += FIELD_SIZE
	return v, true
}

func (c *cursor) readFloat32() (float32, bool) {
	bits, ok := c.readUint32()
	return math.Float32frombits(bits), ok
}

func (c *cursor) readTerms() (AxisTerms, bool) {
	var t AxisTerms
	var ok bool
	if t.P, ok = c.readFloat32(); !ok {
		return AxisTerms{}, false
	}
	if t.I, ok = c.readFloat32(); !ok {
		return AxisTerms{}, false
	}
	if t.D, ok = c.readFloat32(); !ok {
		return AxisTerms{}, false
	}
	if t.FF, ok = c.readFloat32(); !ok {
		return AxisTerms{}, false
	}
	return t, true
}

// DecodeRecord decodes the record starting at off. It reports false when any
// of the 14 fields does not fit in buf, in which case the record is incomplete
// and must be discarded.
func DecodeRecord(buf []byte, off int) (Record, bool) {
	c := cursor{buf: buf, off: off}
	var r Record
	var ok bool

	if r.LoopIteration, ok = c.readUint32(); !ok {
		return Record{}, false
	}
	if r.Time, ok = c.readUint32(); !ok {
		return Record{}, false
	}
	if r.Roll, ok = c.readTerms(); !ok {
		return Record{}, false
	}
	if r.Pitch, ok = c.readTerms(); !ok {
		return Record{}, false
	}
	if r.Yaw, ok = c.readTerms(); !ok {
		return Record{}, false
	}
	return r, true
}

// Decode returns every complete record in data, in file order. Decoding stops
// silently at the first incomplete record.
func Decode(data []byte) []Record {
	records := make([]Record, 0, len(data)/RecordSize)
	for off := 0; ; off += RecordSize {
		r, ok := DecodeRecord(data, off)
		if !ok {
			break
		}
		records = append(records, r)
	}
	return records
}

// ReadLog reads r to the end and decodes it. A read failure is not reported:
// decoding simply covers the bytes that arrived before it.
func ReadLog(r io.Reader) []Record {
	data, err := io.ReadAll(r)
	if err != nil {
		monitoring.Logf("blackbox: read stopped after %d bytes: %v", len(data), err)
	}
	records := Decode(data)
	if rem := len(data) % RecordSize; rem != 0 {
		monitoring.Logf("blackbox: ignored %d trailing bytes after %d records", rem, len(records))
	}
	return records
}

// ReadFile opens path on fsys and decodes its contents. Only a failure to open
// the file is returned as an error.
func ReadFile(fsys fsutil.FileSystem, path string) ([]Record, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	defer f.Close()

	return ReadLog(f), nil
}
