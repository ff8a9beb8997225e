// Command gen-blackbox generates synthetic blackbox logs for exercising the
// analyzer.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/banshee-data/blackbox/internal/blackbox"
)

// Synthesize returns n records sampled every periodMs milliseconds. Each axis
// follows its own sine wave so the chart shows three distinct tracks.
func Synthesize(n int, periodMs uint32) []blackbox.Record {
	records := make([]blackbox.Record, n)
	for i := range records {
		phase := float64(i) / 50
		records[i] = blackbox.Record{
			LoopIteration: uint32(i),
			Time:          uint32(i) * periodMs,
			Roll:          wave(phase, 0, 120),
			Pitch:         wave(phase, 2*math.Pi/3, 90),
			Yaw:           wave(phase, 4*math.Pi/3, 60),
		}
	}
	return records
}

func wave(phase, offset, amplitude float64) blackbox.AxisTerms {
	s := math.Sin(phase + offset)
	ff := float32(amplitude / 4 * math.Cos(phase+offset))
	return blackbox.AxisTerms{
		P:  float32(amplitude * s),
		I:  float32(amplitude / 2 * s),
		D:  float32(amplitude / 8 * math.Cos(2*(phase+offset))),
		FF: ff,
	}
}

// checkArgs rejects flag values that would overflow the 32-bit loop counter
// or timestamp, or produce a tail long enough to decode as a record.
func checkArgs(n int, periodMs uint64, tail int) error {
	if n < 0 {
		return fmt.Errorf("-n must be >= 0, got %d", n)
	}
	if tail < 0 || tail >= blackbox.RecordSize {
		return fmt.Errorf("-tail must be in [0, %d), got %d", blackbox.RecordSize, tail)
	}
	if periodMs > math.MaxUint32 {
		return fmt.Errorf("-period must be <= %d, got %d", uint64(math.MaxUint32), periodMs)
	}
	if n == 0 {
		return nil
	}
	last := uint64(n - 1)
	if last > math.MaxUint32 {
		return fmt.Errorf("-n must be <= %d, got %d", uint64(math.MaxUint32)+1, n)
	}
	if periodMs > 0 && last > math.MaxUint32/periodMs {
		return fmt.Errorf("-n %d with -period %d overflows the 32-bit timestamp", n, periodMs)
	}
	return nil
}

func main() {
	output := flag.String("o", "sample.bbl", "output path")
	records := flag.Int("n", 1000, "number of records")
	period := flag.Uint64("period", 2, "loop period in milliseconds")
	tail := flag.Int("tail", 0, "extra trailing bytes to append (simulates a cut-off write)")
	flag.Parse()

	if err := checkArgs(*records, *period, *tail); err != nil {
		log.Fatal(err)
	}

	buf := make([]byte, 0, *records*blackbox.RecordSize+*tail)
	for _, r := range Synthesize(*records, uint32(*period)) {
		buf = r.AppendBinary(buf)
	}
	buf = append(buf, make([]byte, *tail)...)

	if err := os.WriteFile(*output, buf, 0644); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}
	log.Printf("✓ Created: %s (%d records, %d bytes)", *output, *records, len(buf))
}
