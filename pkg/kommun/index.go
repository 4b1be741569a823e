// Package kommun resolves Swedish postal codes to the municipality that
// serves them. The mapping ships as a JSON file: one record per
// municipality carrying its public links and every postal code in its
// area.
package kommun

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kompisbot/kompis/pkg/ports"
)

// record is the on-disk shape of one municipality entry.
type record struct {
	Name                  string   `json:"name"`
	KommunLink            string   `json:"kommun_link"`
	VuxenutbildningarLink string   `json:"vuxenutbildningar_link"`
	Postnummers           []string `json:"postnummers"`
}

// Index maps postal codes to municipalities. It is built once and read
// concurrently without locking. It implements ports.MunicipalityIndex.
type Index struct {
	byCode map[string]ports.Municipality
	byName map[string]ports.Municipality
}

// LoadFile reads a municipality JSON file and builds the index.
func LoadFile(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read municipality file: %w", err)
	}
	return Load(raw)
}

// Load builds the index from raw JSON. Records without a name or a
// municipality link are rejected: a lookup hit without a link would
// leave the conversation with nothing to offer.
func Load(raw []byte) (*Index, error) {
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse municipality file: %w", err)
	}

	idx := &Index{
		byCode: make(map[string]ports.Municipality),
		byName: make(map[string]ports.Municipality, len(records)),
	}
	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("municipality record %d has no name", i)
		}
		if rec.KommunLink == "" {
			return nil, fmt.Errorf("municipality %q has no link", rec.Name)
		}
		m := ports.Municipality{
			Name:       rec.Name,
			Link:       rec.KommunLink,
			KomvuxLink: rec.VuxenutbildningarLink,
		}
		idx.byName[rec.Name] = m
		for _, code := range rec.Postnummers {
			idx.byCode[normalizeCode(code)] = m
		}
	}
	return idx, nil
}

// Lookup resolves a postal code. The boolean reports whether any
// municipality covers it.
func (idx *Index) Lookup(code string) (ports.Municipality, bool) {
	m, ok := idx.byCode[normalizeCode(code)]
	return m, ok
}

// ByName resolves a municipality by its exact name.
func (idx *Index) ByName(name string) (ports.Municipality, bool) {
	m, ok := idx.byName[name]
	return m, ok
}

// Len reports how many postal codes the index covers.
func (idx *Index) Len() int {
	return len(idx.byCode)
}

// Postal codes appear both as "12345" and "123 45" in the wild.
func normalizeCode(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), " ", "")
}
