package database

import "github.com/heinrichwest/Personal-budget-sub000/internal/models"

// DefaultSystemRules returns the SYSTEM-scope mapping rules seeded at
// startup. They cover common South African merchants; owners shadow them
// with personal rules as needed.
func DefaultSystemRules() []models.MappingRule {
	refs := []struct {
		matchText   string
		mapped      string
		categoryRef string
	}{
		{"CHECKERS", "Checkers", "Groceries"},
		{"PICK N PAY", "Pick n Pay", "Groceries"},
		{"WOOLWORTHS", "Woolworths", "Groceries"},
		{"SPAR", "Spar", "Groceries"},
		{"UBER EATS", "Uber Eats", "Eating Out"},
		{"UBER", "Uber", "Transport"},
		{"BOLT", "Bolt", "Transport"},
		{"ENGEN", "Engen", "Fuel"},
		{"SHELL", "Shell", "Fuel"},
		{"SASOL", "Sasol", "Fuel"},
		{"NETFLIX", "Netflix", "Entertainment"},
		{"SPOTIFY", "Spotify", "Entertainment"},
		{"DSTV", "DStv", "Entertainment"},
		{"VODACOM", "Vodacom", "Cellphone"},
		{"MTN", "MTN", "Cellphone"},
		{"CLICKS", "Clicks", "Health"},
		{"DISCHEM", "Dis-Chem", "Health"},
		{"SALARY", "Salary", "Income"},
	}

	rules := make([]models.MappingRule, 0, len(refs))
	for _, r := range refs {
		rules = append(rules, models.MappingRule{
			MatchText:         r.matchText,
			MappedDescription: r.mapped,
			CategoryRef:       r.categoryRef,
			OwnerScope:        models.ScopeSystem,
		})
	}
	return rules
}
