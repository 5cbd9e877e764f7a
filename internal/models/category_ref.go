package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// PendingDefaultPrefix is the legacy sentinel encoding for a category that
// a rule references but the owner has not created yet. It survives in stored
// rules, so parsing must keep recognizing it.
const PendingDefaultPrefix = "pending default category: "

var ErrEmptyCategoryRef = errors.New("empty category reference")

// CategoryRefKind discriminates the category reference variants
type CategoryRefKind int

const (
	// CategoryRefExisting points at a category by ID
	CategoryRefExisting CategoryRefKind = iota
	// CategoryRefByName refers to a category by its (possibly not yet
	// normalized) name
	CategoryRefByName
	// CategoryRefPendingDefault is a system-proposed default the owner has
	// not materialized yet
	CategoryRefPendingDefault
)

// CategoryRef is a tagged reference to a budget category. It replaces the
// stringly-typed sentinel scattered through the stored rules; resolution
// happens exclusively in the category resolver.
type CategoryRef struct {
	Kind CategoryRefKind
	ID   uuid.UUID
	Name string
}

// ExistingCategory builds a reference to a category by ID
func ExistingCategory(id uuid.UUID) CategoryRef {
	return CategoryRef{Kind: CategoryRefExisting, ID: id}
}

// CategoryByName builds a reference to a category by name
func CategoryByName(name string) CategoryRef {
	return CategoryRef{Kind: CategoryRefByName, Name: name}
}

// PendingDefaultCategory builds a reference to a not-yet-created default
func PendingDefaultCategory(name string) CategoryRef {
	return CategoryRef{Kind: CategoryRefPendingDefault, Name: name}
}

// ParseCategoryRef decodes a stored category reference: a UUID means an
// existing category, the pending-default sentinel carries a proposed name,
// anything else is a bare name.
func ParseCategoryRef(raw string) (CategoryRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryRef{}, ErrEmptyCategoryRef
	}

	if strings.HasPrefix(strings.ToLower(raw), PendingDefaultPrefix) {
		name := strings.TrimSpace(raw[len(PendingDefaultPrefix):])
		if name == "" {
			return CategoryRef{}, ErrEmptyCategoryRef
		}
		return PendingDefaultCategory(name), nil
	}

	if id, err := uuid.Parse(raw); err == nil {
		return ExistingCategory(id), nil
	}

	return CategoryByName(raw), nil
}

// String encodes the reference back to its stored form
func (r CategoryRef) String() string {
	switch r.Kind {
	case CategoryRefExisting:
		return r.ID.String()
	case CategoryRefPendingDefault:
		return PendingDefaultPrefix + r.Name
	default:
		return r.Name
	}
}
