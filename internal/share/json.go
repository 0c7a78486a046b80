// Package share reads and writes pool documents: JSON files and the
// compressed share links understood by the web version of the app.
package share

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/validate"
)

// DefaultFileName is the name the web app downloads pools as.
const DefaultFileName = "cost-splits.json"

var ErrMissingArrays = errors.New("invalid state: missing people or transactions arrays")

// document mirrors models.Pool with pointers so missing arrays can be told
// apart from empty ones.
type document struct {
	Pool         string                `json:"pool,omitempty"`
	People       *[]string             `json:"people"`
	Transactions *[]models.Transaction `json:"transactions"`
}

// Decode reads a pool document and validates it.
func Decode(r io.Reader) (models.Pool, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return models.Pool{}, fmt.Errorf("failed to decode pool: %w", err)
	}
	if doc.People == nil || doc.Transactions == nil {
		return models.Pool{}, ErrMissingArrays
	}

	p := models.Pool{
		Name:         doc.Pool,
		People:       *doc.People,
		Transactions: *doc.Transactions,
	}
	if err := validate.Pool(p); err != nil {
		return models.Pool{}, err
	}
	return p, nil
}

// Encode writes the pool document as a single line of JSON.
func Encode(w io.Writer, p models.Pool) error {
	if err := json.NewEncoder(w).Encode(normalize(p)); err != nil {
		return fmt.Errorf("failed to encode pool: %w", err)
	}
	return nil
}

// ReadFile decodes the pool document stored at path.
func ReadFile(path string) (models.Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Pool{}, fmt.Errorf("failed to open pool file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes the pool into path, replacing any previous content.
func WriteFile(path string, p models.Pool) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write pool file: %w", err)
	}
	return nil
}

// normalize replaces nil slices so they encode as [] rather than null.
func normalize(p models.Pool) models.Pool {
	p = p.Clone()
	if p.People == nil {
		p.People = []string{}
	}
	if p.Transactions == nil {
		p.Transactions = []models.Transaction{}
	}
	for ti := range p.Transactions {
		t := &p.Transactions[ti]
		if t.Splits == nil {
			t.Splits = []float64{}
		}
		for ii := range t.Items {
			if t.Items[ii].Splits == nil {
				t.Items[ii].Splits = []float64{}
			}
		}
	}
	return p
}
