// Package catalog holds the read-only test battery hierarchy (battery → protocol → word).
package catalog

import (
	"errors"
	"fmt"

	"ssdcollector/internal/models"
)

var (
	ErrBatteryNotFound  = errors.New("test battery not found")
	ErrProtocolNotFound = errors.New("protocol not found")
)

// Catalog is an immutable, ordered set of test batteries
type Catalog struct {
	batteries []models.TestBattery
	byID      map[string]int
}

// Default returns the catalog of built-in batteries
func Default() *Catalog {
	c, err := New(TAAPU, GFTAKLPA)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// New validates the given batteries and builds a catalog from them
func New(batteries ...models.TestBattery) (*Catalog, error) {
	c := &Catalog{
		batteries: make([]models.TestBattery, 0, len(batteries)),
		byID:      make(map[string]int, len(batteries)),
	}

	for _, b := range batteries {
		if b.ID == "" {
			return nil, errors.New("battery id is required")
		}
		if _, dup := c.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate battery id %q", b.ID)
		}
		if len(b.Protocols) == 0 {
			return nil, fmt.Errorf("battery %q has no protocols", b.ID)
		}

		seen := make(map[string]bool, len(b.Protocols))
		for _, p := range b.Protocols {
			if p.ID == "" {
				return nil, fmt.Errorf("battery %q has a protocol without id", b.ID)
			}
			if seen[p.ID] {
				return nil, fmt.Errorf("battery %q has duplicate protocol id %q", b.ID, p.ID)
			}
			seen[p.ID] = true
			if len(p.Words) == 0 {
				return nil, fmt.Errorf("protocol %q in battery %q has no words", p.ID, b.ID)
			}
		}

		c.byID[b.ID] = len(c.batteries)
		c.batteries = append(c.batteries, b)
	}

	return c, nil
}

// Batteries returns every battery in catalog order
func (c *Catalog) Batteries() []models.TestBattery {
	out := make([]models.TestBattery, len(c.batteries))
	copy(out, c.batteries)
	return out
}

// Battery looks up a battery by id
func (c *Catalog) Battery(id string) (*models.TestBattery, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBatteryNotFound, id)
	}
	b := c.batteries[idx]
	return &b, nil
}

// Protocol looks up a protocol within a battery
func (c *Catalog) Protocol(batteryID, protocolID string) (*models.Protocol, error) {
	b, err := c.Battery(batteryID)
	if err != nil {
		return nil, err
	}
	return ProtocolByID(b, protocolID)
}

// ProtocolByID finds a protocol inside an already resolved battery
func ProtocolByID(b *models.TestBattery, protocolID string) (*models.Protocol, error) {
	for i := range b.Protocols {
		if b.Protocols[i].ID == protocolID {
			p := b.Protocols[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrProtocolNotFound, b.ID, protocolID)
}

// AllWords flattens the words of every protocol in battery order.
// Words shared by several protocols appear once per protocol.
func AllWords(b *models.TestBattery) []models.Word {
	words := make([]models.Word, 0, b.TotalWords())
	for _, p := range b.Protocols {
		words = append(words, p.Words...)
	}
	return words
}

// TotalWordCount is the number of word slots in a battery
func TotalWordCount(b *models.TestBattery) int {
	return len(AllWords(b))
}
