package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ClassifierTestSuite struct {
	suite.Suite
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}

func (s *ClassifierTestSuite) TestParseClassifierResponse_PlainArray() {
	id := uuid.New()
	raw := fmt.Sprintf(`[{"id":"%s","merchant":"Checkers","category":"Groceries"}]`, id)

	proposals, err := ParseClassifierResponse(raw)

	s.NoError(err)
	s.Len(proposals, 1)
	s.Equal(id, proposals[0].ID)
	s.Equal("Checkers", proposals[0].Merchant)
	s.Equal("Groceries", proposals[0].Category)
}

func (s *ClassifierTestSuite) TestParseClassifierResponse_StripsCodeFences() {
	id := uuid.New()
	raw := fmt.Sprintf("```json\n[{\"id\":\"%s\",\"merchant\":\"Uber\",\"category\":\"Transport\"}]\n```", id)

	proposals, err := ParseClassifierResponse(raw)

	s.NoError(err)
	s.Len(proposals, 1)
	s.Equal("Uber", proposals[0].Merchant)
}

func (s *ClassifierTestSuite) TestParseClassifierResponse_DropsEntriesWithBadIDs() {
	id := uuid.New()
	raw := fmt.Sprintf(`[
		{"id":"not-a-uuid","merchant":"Ghost","category":"Misc"},
		{"id":"%s","merchant":"Spar","category":"Groceries"}
	]`, id)

	proposals, err := ParseClassifierResponse(raw)

	s.NoError(err)
	s.Len(proposals, 1, "entries with unusable ids are dropped without failing the chunk")
	s.Equal(id, proposals[0].ID)
}

func (s *ClassifierTestSuite) TestParseClassifierResponse_MalformedArrayFails() {
	for _, raw := range []string{
		"I could not classify these transactions.",
		`{"id":"x"}`,
		"[{broken json",
	} {
		_, err := ParseClassifierResponse(raw)
		s.Error(err, "input %q", raw)
	}
}

func (s *ClassifierTestSuite) TestBuildClassifierPrompt() {
	id := uuid.New()
	items := []ClassifierItem{{ID: id, Description: "CHECKERS SANDTON"}}

	prompt := buildClassifierPrompt(items, []string{"Groceries", "Transport"})

	s.Contains(prompt, id.String())
	s.Contains(prompt, "CHECKERS SANDTON")
	s.Contains(prompt, "- Groceries")
	s.Contains(prompt, "- Transport")
	s.Contains(prompt, "Uncategorized")
}
