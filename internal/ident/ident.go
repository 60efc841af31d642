// Package ident generates record identifiers and habit colors.
package ident

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// IDGenerator produces unique opaque record IDs.
type IDGenerator interface {
	NewID() string
}

// ColorPicker chooses a color from a palette.
type ColorPicker interface {
	Pick(palette []string) string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence yields Prefix-1, Prefix-2, ... for deterministic tests.
type Sequence struct {
	Prefix string
	n      int
}

func (s *Sequence) NewID() string {
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// RandomColor picks uniformly. Two habits may end up with the same color.
type RandomColor struct{}

func (RandomColor) Pick(palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	return palette[rand.IntN(len(palette))]
}

// CycleColor walks the palette in order.
type CycleColor struct {
	n int
}

func (c *CycleColor) Pick(palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	color := palette[c.n%len(palette)]
	c.n++
	return color
}
