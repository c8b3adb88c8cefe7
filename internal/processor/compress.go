package processor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbolado/districtpack/internal/geo"

	jsoniter "github.com/json-iterator/go"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

// precision is the number of coordinate decimal places kept,
// roughly 11 cm on the ground.
const precision = 6

// EscapeHTML off keeps non-ASCII property values (district and
// species names are Spanish) literal in the output. UseNumber keeps
// untouched numbers byte-identical across the rewrite.
var json = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

var compactor = newCompactor()

func newCompactor() *minify.M {
	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	return m
}

// CompressFile rewrites one district file: properties are compressed,
// coordinates rounded, and the document re-encoded without formatting
// whitespace. The result is written through a temp file and renamed
// over outPath, so a failed write never truncates the original. With
// backup set, the original bytes are kept at outPath+".bak".
// Returns the on-disk byte sizes before and after.
func CompressFile(inPath, outPath string, backup bool) (int64, int64, error) {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return 0, 0, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, 0, fmt.Errorf("parse %s: %w", inPath, err)
	}

	if err := transform(doc); err != nil {
		return 0, 0, fmt.Errorf("transform %s: %w", inPath, err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, 0, fmt.Errorf("encode %s: %w", inPath, err)
	}

	out, err := compactor.Bytes("application/json", data)
	if err != nil {
		return 0, 0, fmt.Errorf("minify %s: %w", inPath, err)
	}

	if backup {
		if err := os.WriteFile(outPath+".bak", raw, 0644); err != nil {
			return 0, 0, err
		}
	}

	if err := writeAtomic(outPath, out); err != nil {
		return 0, 0, err
	}

	return int64(len(raw)), int64(len(out)), nil
}

// transform rewrites every feature in place. Top-level fields other
// than "features" pass through untouched.
func transform(doc map[string]interface{}) error {
	features, ok := doc["features"].([]interface{})
	if !ok {
		return nil
	}

	for _, f := range features {
		feature, ok := f.(map[string]interface{})
		if !ok {
			continue
		}

		// Absent properties stay absent; present null becomes {}.
		if props, ok := feature["properties"]; ok {
			pm, _ := props.(map[string]interface{})
			feature["properties"] = CompressProperties(pm)
		}

		geometry, ok := feature["geometry"].(map[string]interface{})
		if !ok {
			continue
		}
		coords, ok := geometry["coordinates"]
		if !ok {
			continue
		}
		tree, err := geo.FromValue(coords)
		if err != nil {
			return err
		}
		geometry["coordinates"] = tree.Round(precision)
	}

	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".districtpack-*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}
