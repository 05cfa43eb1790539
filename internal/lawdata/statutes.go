// Package lawdata supplies the static domain lookup tables consumed by
// pipeline stages: the jurisdiction statute-of-limitations table and the
// attorney roster. Both ship with built-in defaults and can be overridden
// from YAML files.
package lawdata

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/intake-engine/internal/model"
)

// Statute case-type keys within a jurisdiction's table.
const (
	CasePersonalInjury     = "personal_injury"
	CaseMedicalMalpractice = "medical_malpractice"
	CaseWrongfulDeath      = "wrongful_death"
	CaseProductLiability   = "product_liability"
)

// defaultJurisdiction is used when a lookup names an unknown state.
const defaultJurisdiction = "Nevada"

// StatuteTable maps jurisdiction name to case-type deadlines.
type StatuteTable struct {
	States map[string]map[string]string `yaml:"states"`
}

// DefaultStatutes returns the built-in statute-of-limitations table.
func DefaultStatutes() *StatuteTable {
	return &StatuteTable{
		States: map[string]map[string]string{
			"Nevada": {
				CasePersonalInjury:     "2 years",
				CaseMedicalMalpractice: "3 years from injury or 1 year from discovery",
				CaseWrongfulDeath:      "2 years",
				CaseProductLiability:   "2 years",
			},
			"California": {
				CasePersonalInjury:     "2 years",
				CaseMedicalMalpractice: "3 years from injury or 1 year from discovery",
				CaseWrongfulDeath:      "2 years",
				CaseProductLiability:   "2 years",
			},
			"Texas": {
				CasePersonalInjury:     "2 years",
				CaseMedicalMalpractice: "2 years",
				CaseWrongfulDeath:      "2 years",
				CaseProductLiability:   "2 years",
			},
		},
	}
}

// LoadStatutes reads a statute table from a YAML file. An empty path
// returns the defaults.
func LoadStatutes(path string) (*StatuteTable, error) {
	if path == "" {
		return DefaultStatutes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "lawdata: read statutes file")
	}

	var table StatuteTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, eris.Wrap(err, "lawdata: parse statutes file")
	}
	if len(table.States) == 0 {
		return nil, eris.New("lawdata: statutes file has no states")
	}

	return &table, nil
}

// Lookup resolves the statute of limitations for a case type in a
// jurisdiction. Unknown jurisdictions fall back to the default; the case
// type is matched by keyword against the free-form case description.
func (t *StatuteTable) Lookup(state, caseType string) model.StatuteOfLimitations {
	rows, ok := t.States[state]
	if !ok {
		rows = t.States[defaultJurisdiction]
	}

	key := classifyCaseType(caseType)
	return model.StatuteOfLimitations{
		State:    state,
		CaseType: key,
		Deadline: rows[key],
		Exceptions: []string{
			"Discovery rule may apply if injury was not immediately apparent",
			"Verify current law - statutes may have changed",
		},
	}
}

// classifyCaseType maps a free-form case description onto a statute key.
func classifyCaseType(caseType string) string {
	lower := strings.ToLower(caseType)
	switch {
	case strings.Contains(lower, "medical") || strings.Contains(lower, "malpractice"):
		return CaseMedicalMalpractice
	case strings.Contains(lower, "death"):
		return CaseWrongfulDeath
	case strings.Contains(lower, "product"):
		return CaseProductLiability
	default:
		return CasePersonalInjury
	}
}
