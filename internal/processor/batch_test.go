package processor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunMissingDirectory(t *testing.T) {
	_, err := Run(RunOptions{Dir: filepath.Join(t.TempDir(), "districts")})

	if !errors.Is(err, ErrDirectoryMissing) {
		t.Errorf("Expected ErrDirectoryMissing, got %v", err)
	}
}

func TestRunNoMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	other := writeDistrict(t, dir, "areas.geojson", districtFixture)

	_, err := Run(RunOptions{Dir: dir})

	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("Expected ErrNoFiles, got %v", err)
	}
	data, readErr := os.ReadFile(other)
	if readErr != nil {
		t.Fatalf("Failed to read file: %v", readErr)
	}
	if string(data) != districtFixture {
		t.Error("Non-matching file was modified")
	}
}

func TestRunAccumulatesTotals(t *testing.T) {
	dir := t.TempDir()
	writeDistrict(t, dir, "district_1.geojson", districtFixture)
	writeDistrict(t, dir, "district_2.geojson", districtFixture)

	totals, err := Run(RunOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if totals.Files != 2 {
		t.Errorf("Expected 2 files, got %d", totals.Files)
	}
	if totals.Original != int64(2*len(districtFixture)) {
		t.Errorf("Expected original total %d, got %d", 2*len(districtFixture), totals.Original)
	}
	if totals.Compressed <= 0 || totals.Compressed >= totals.Original {
		t.Errorf("Expected 0 < compressed < original, got %d / %d", totals.Compressed, totals.Original)
	}
	if totals.Reduction() <= 0 {
		t.Errorf("Expected a positive reduction, got %.1f%%", totals.Reduction())
	}
}

func TestRunLenientSkipsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	broken := writeDistrict(t, dir, "district_1.geojson", "{broken")
	writeDistrict(t, dir, "district_2.geojson", districtFixture)

	totals, err := Run(RunOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if totals.Files != 1 {
		t.Errorf("Expected 1 processed file, got %d", totals.Files)
	}
	data, readErr := os.ReadFile(broken)
	if readErr != nil {
		t.Fatalf("Failed to read file: %v", readErr)
	}
	if string(data) != "{broken" {
		t.Error("Broken file was modified")
	}
}

func TestRunStrictAborts(t *testing.T) {
	dir := t.TempDir()
	writeDistrict(t, dir, "district_1.geojson", "{broken")
	good := writeDistrict(t, dir, "district_2.geojson", districtFixture)

	totals, err := Run(RunOptions{Dir: dir, Strict: true})

	if err == nil {
		t.Fatal("Expected strict mode to surface the parse error")
	}
	if totals.Files != 0 {
		t.Errorf("Expected no files processed, got %d", totals.Files)
	}
	data, readErr := os.ReadFile(good)
	if readErr != nil {
		t.Fatalf("Failed to read file: %v", readErr)
	}
	if string(data) != districtFixture {
		t.Error("Strict abort still processed a later file")
	}
}
