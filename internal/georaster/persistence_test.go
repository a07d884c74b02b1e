package georaster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "asc.dgr")

	attrs := northUpAttrs()
	attrs.Unit = "m/yr"
	attrs.Extra = map[string]string{"track": "AT424"}
	data := make([]float64, attrs.Width*attrs.Length)
	for i := range data {
		data[i] = float64(i) * 0.01
	}
	data[7] = math.NaN() // no-data pixel must survive the round trip

	if err := Write(data, attrs, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(attrs, r.Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(data, r.Data, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRejectsWrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dgr")
	if err := Write([]float64{1, 2, 3}, northUpAttrs(), path); err == nil {
		t.Fatal("Write should reject data that does not fill the grid")
	}
}

func TestReadAttrs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asc.dgr")
	attrs := northUpAttrs()
	if err := Write(make([]float64, attrs.Width*attrs.Length), attrs, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := ReadAttrs(path)
	if err != nil {
		t.Fatalf("ReadAttrs failed: %v", err)
	}
	if got.Heading != attrs.Heading || got.Incidence != attrs.Incidence || !got.Geocoded {
		t.Errorf("ReadAttrs = %+v, want %+v", got, attrs)
	}
}

func TestReadWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asc.dgr")
	attrs := northUpAttrs()
	data := make([]float64, attrs.Width*attrs.Length)
	for i := range data {
		data[i] = float64(i)
	}
	if err := Write(data, attrs, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := ReadWindow(path, Window{X0: 1, Y0: 1, X1: 3, Y1: 3})
	if err != nil {
		t.Fatalf("ReadWindow failed: %v", err)
	}
	want := []float64{7, 8, 13, 14}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window[%d] = %g, want %g", i, got[i], want[i])
		}
	}

	if _, err := ReadWindow(path, Window{X0: 0, Y0: 0, X1: 99, Y1: 99}); err == nil {
		t.Error("ReadWindow should fail for an oversized window")
	}
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.dgr")
	if err := os.WriteFile(path, []byte("not a raster"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("Read should fail on a non-raster file")
	}
	if _, err := Read(filepath.Join(t.TempDir(), "missing.dgr")); err == nil {
		t.Fatal("Read should fail on a missing file")
	}
}
