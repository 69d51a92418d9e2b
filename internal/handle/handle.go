// Package handle builds URL handles from product titles and hands out
// handles that are unique for the lifetime of an Allocator.
package handle

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify lowercases s, drops everything except ASCII letters, digits,
// Swedish letters, hyphens and whitespace, and joins words with hyphens.
func Slugify(s string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', strings.ContainsRune("åäöÅÄÖ", r), unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(strings.ToLower(kept)), "-")
}

// Base derives the product handle shared by a main row and its variants:
// the slug of the title up to its first hyphen.
func Base(title string) string {
	before, _, _ := strings.Cut(title, "-")
	return Slugify(before)
}

// Allocator hands out handles that were never returned before. It is not
// safe for concurrent use.
type Allocator struct {
	used  map[string]struct{}
	order []string
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{used: make(map[string]struct{})}
}

// Allocate returns base if it is free, otherwise base-1, base-2 and so on,
// and registers the result.
func (a *Allocator) Allocate(base string) string {
	candidate := base
	for i := 1; a.Contains(candidate); i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	a.used[candidate] = struct{}{}
	a.order = append(a.order, candidate)
	return candidate
}

// Contains reports whether h has been allocated.
func (a *Allocator) Contains(h string) bool {
	_, ok := a.used[h]
	return ok
}

// Len returns the number of allocated handles.
func (a *Allocator) Len() int {
	return len(a.order)
}

// Handles returns every allocated handle in allocation order.
func (a *Allocator) Handles() []string {
	return append([]string(nil), a.order...)
}
