// Package types provides type definitions for structured data used throughout the resume-enhancer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// TechStack groups the bullet points supplied for one technology.
// Stacks are kept in a slice, not a map, so that distribution walks
// technologies in the caller's order and stays deterministic.
type TechStack struct {
	Name   string   `json:"name"`
	Points []string `json:"points"`
}

// TechPoint is the atomic unit of distribution: one bullet point text
// tagged with the technology it belongs to. Uniqueness is by exact text.
type TechPoint struct {
	Tech string `json:"tech"`
	Text string `json:"text"`
}

// StacksFromMap converts a technology→points map into ordered stacks.
// Map iteration order is not deterministic, so keys are sorted.
func StacksFromMap(m map[string][]string) []TechStack {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	stacks := make([]TechStack, 0, len(names))
	for _, name := range names {
		stacks = append(stacks, TechStack{Name: name, Points: m[name]})
	}
	return stacks
}

// TotalPoints returns the number of points across all stacks.
func TotalPoints(stacks []TechStack) int {
	total := 0
	for _, s := range stacks {
		total += len(s.Points)
	}
	return total
}
