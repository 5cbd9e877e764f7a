package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CategoryRefTestSuite struct {
	suite.Suite
}

func TestCategoryRefSuite(t *testing.T) {
	suite.Run(t, new(CategoryRefTestSuite))
}

func (s *CategoryRefTestSuite) TestParseCategoryRef_ExistingID() {
	id := uuid.New()

	ref, err := ParseCategoryRef(id.String())

	s.NoError(err)
	s.Equal(CategoryRefExisting, ref.Kind)
	s.Equal(id, ref.ID)
}

func (s *CategoryRefTestSuite) TestParseCategoryRef_BareName() {
	ref, err := ParseCategoryRef("Groceries")

	s.NoError(err)
	s.Equal(CategoryRefByName, ref.Kind)
	s.Equal("Groceries", ref.Name)
}

func (s *CategoryRefTestSuite) TestParseCategoryRef_PendingDefault() {
	testCases := []struct {
		raw          string
		expectedName string
		description  string
	}{
		{"pending default category: Groceries", "Groceries", "lowercase sentinel"},
		{"Pending Default Category: Pet Food", "Pet Food", "sentinel is case-insensitive"},
		{"pending default category:  Fuel ", "Fuel", "name is trimmed"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			ref, err := ParseCategoryRef(tc.raw)
			s.NoError(err)
			s.Equal(CategoryRefPendingDefault, ref.Kind)
			s.Equal(tc.expectedName, ref.Name)
		})
	}
}

func (s *CategoryRefTestSuite) TestParseCategoryRef_Empty() {
	for _, raw := range []string{"", "   ", "pending default category: "} {
		_, err := ParseCategoryRef(raw)
		s.ErrorIs(err, ErrEmptyCategoryRef, "input %q", raw)
	}
}

func (s *CategoryRefTestSuite) TestString_RoundTrip() {
	refs := []CategoryRef{
		ExistingCategory(uuid.New()),
		CategoryByName("Eating Out"),
		PendingDefaultCategory("Groceries"),
	}

	for _, ref := range refs {
		parsed, err := ParseCategoryRef(ref.String())
		s.NoError(err)
		s.Equal(ref.Kind, parsed.Kind)
		if ref.Kind == CategoryRefExisting {
			s.Equal(ref.ID, parsed.ID)
		} else {
			s.Equal(ref.Name, parsed.Name)
		}
	}
}
