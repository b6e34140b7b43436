// Package seed loads reference data (waste types, opportunities, tutorials
// and buyers) from data files and writes it to the database.
package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"daurulang/internal/model"

	"gopkg.in/yaml.v3"
)

// Record kinds in a JSON lines file.
const (
	KindCategory    = "category"
	KindWasteType   = "waste_type"
	KindOpportunity = "opportunity"
	KindTutorial    = "tutorial"
	KindBuyer       = "buyer"
)

// Dataset is the reference data read from one or more seed files.
type Dataset struct {
	Categories    []model.Category            `yaml:"categories"`
	WasteTypes    []model.CatalogItem         `yaml:"wasteTypes"`
	Opportunities []model.BusinessOpportunity `yaml:"opportunities"`
	Tutorials     []model.Tutorial            `yaml:"tutorials"`
	Buyers        []model.WasteBuyer          `yaml:"buyers"`
}

// Loader reads a seed file and returns its dataset.
type Loader interface {
	Load(ctx context.Context, name string) (*Dataset, error)
}

// Merge appends other's records to d.
func (d *Dataset) Merge(other *Dataset) {
	if other == nil {
		return
	}
	d.Categories = append(d.Categories, other.Categories...)
	d.WasteTypes = append(d.WasteTypes, other.WasteTypes...)
	d.Opportunities = append(d.Opportunities, other.Opportunities...)
	d.Tutorials = append(d.Tutorials, other.Tutorials...)
	d.Buyers = append(d.Buyers, other.Buyers...)
}

// Len returns the total number of records.
func (d *Dataset) Len() int {
	return len(d.Categories) + len(d.WasteTypes) + len(d.Opportunities) + len(d.Tutorials) + len(d.Buyers)
}

// Normalize fills categories referenced by waste types but not listed, and
// collapses tutorial difficulty spellings.
func (d *Dataset) Normalize() {
	known := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		known[c.ID] = true
	}
	for _, it := range d.WasteTypes {
		if it.Category.ID != "" && !known[it.Category.ID] {
			name := it.Category.Name
			if name == "" {
				name = it.Category.ID
			}
			d.Categories = append(d.Categories, model.Category{ID: it.Category.ID, Name: name})
			known[it.Category.ID] = true
		}
	}

	for i := range d.Tutorials {
		d.Tutorials[i].Difficulty = model.ParseDifficulty(string(d.Tutorials[i].Difficulty))
		c := d.Tutorials[i].Content
		d.Tutorials[i].Content = model.NormalizeContent(c.Materials, c.Steps, c.Tips)
	}
}

// Validate reports records that cannot be stored.
func (d *Dataset) Validate() error {
	var errs []error
	for _, it := range d.WasteTypes {
		if it.ID == "" || it.Category.ID == "" {
			errs = append(errs, fmt.Errorf("waste type %q: id and category are required", it.Name))
		}
	}
	for _, o := range d.Opportunities {
		if o.ID == "" {
			errs = append(errs, fmt.Errorf("opportunity %q: id is required", o.Title))
		}
	}
	for _, t := range d.Tutorials {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("tutorial %q: id is required", t.Title))
		}
	}
	for _, b := range d.Buyers {
		if b.ID == "" {
			errs = append(errs, fmt.Errorf("buyer %q: id is required", b.Name))
		}
		if !b.Type.Valid() {
			errs = append(errs, fmt.Errorf("buyer %s: unknown type %q", b.ID, b.Type))
		}
		if b.Location != nil && !b.Location.Valid() {
			errs = append(errs, fmt.Errorf("buyer %s: coordinates out of range", b.ID))
		}
	}
	return errors.Join(errs...)
}

// Decode reads a seed file. The format follows the name: a .gz suffix is
// gunzipped first, .yaml/.yml is a YAML document, anything else is JSON lines.
func Decode(ctx context.Context, r io.Reader, name string) (*Dataset, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	switch path.Ext(name) {
	case ".yaml", ".yml":
		return decodeYAML(r, name)
	default:
		return decodeLines(ctx, r, name)
	}
}

func decodeYAML(r io.Reader, name string) (*Dataset, error) {
	ds := &Dataset{}
	if err := yaml.NewDecoder(r).Decode(ds); err != nil {
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return ds, nil
}

// tutorialLine lets tutorial content arrive in any stored shape.
type tutorialLine struct {
	model.Tutorial
	Content json.RawMessage `json:"content"`
}

func decodeLines(ctx context.Context, r io.Reader, name string) (*Dataset, error) {
	ds := &Dataset{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var head struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(line, &head); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}

		var err error
		switch head.Kind {
		case KindCategory:
			err = appendRecord(line, &ds.Categories)
		case KindWasteType:
			err = appendRecord(line, &ds.WasteTypes)
		case KindOpportunity:
			err = appendRecord(line, &ds.Opportunities)
		case KindBuyer:
			err = appendRecord(line, &ds.Buyers)
		case KindTutorial:
			var t tutorialLine
			if err = json.Unmarshal(line, &t); err == nil {
				t.Tutorial.Content, err = model.ParseContent(t.Content)
				ds.Tutorials = append(ds.Tutorials, t.Tutorial)
			}
		default:
			err = fmt.Errorf("unknown record kind %q", head.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return ds, nil
}

func appendRecord[T any](line []byte, dst *[]T) error {
	var v T
	if err := json.Unmarshal(line, &v); err != nil {
		return err
	}
	*dst = append(*dst, v)
	return nil
}
