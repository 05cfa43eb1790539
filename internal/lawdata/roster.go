package lawdata

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Well-known roster role ids used by the routing stage.
const (
	RoleSeniorPartner     = "senior_partner"
	RolePIAssociate       = "pi_associate"
	RoleIntakeCoordinator = "intake_coordinator"
)

// Attorney is one roster entry with specialties and availability.
type Attorney struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Specialties  []string `yaml:"specialties"`
	MinCaseValue string   `yaml:"min_case_value,omitempty"`
	Availability string   `yaml:"availability,omitempty"`
	Screening    bool     `yaml:"screening,omitempty"`
}

// Roster is the attorney and coordinator lineup used for routing.
type Roster struct {
	Attorneys []Attorney `yaml:"attorneys"`
}

// DefaultRoster returns the built-in roster.
func DefaultRoster() *Roster {
	return &Roster{
		Attorneys: []Attorney{
			{
				ID:           RoleSeniorPartner,
				Name:         "Senior Partner",
				Specialties:  []string{"commercial_trucking", "wrongful_death", "catastrophic_injury"},
				MinCaseValue: "high",
				Availability: "by_appointment",
			},
			{
				ID:           RolePIAssociate,
				Name:         "PI Associate",
				Specialties:  []string{"auto_accident", "slip_fall", "general_pi"},
				MinCaseValue: "any",
				Availability: "standard_hours",
			},
			{
				ID:           RoleIntakeCoordinator,
				Name:         "Intake Coordinator",
				Specialties:  []string{"all"},
				Availability: "business_hours",
				Screening:    true,
			},
		},
	}
}

// LoadRoster reads a roster from a YAML file. An empty path returns the
// defaults.
func LoadRoster(path string) (*Roster, error) {
	if path == "" {
		return DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "lawdata: read roster file")
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, eris.Wrap(err, "lawdata: parse roster file")
	}
	if len(roster.Attorneys) == 0 {
		return nil, eris.New("lawdata: roster file has no attorneys")
	}

	return &roster, nil
}

// ByID returns the roster entry with the given id, or nil.
func (r *Roster) ByID(id string) *Attorney {
	for i := range r.Attorneys {
		if r.Attorneys[i].ID == id {
			return &r.Attorneys[i]
		}
	}
	return nil
}

// ForSpecialties returns the first non-screening attorney matching any of
// the requested specialties, falling back to the intake coordinator.
func (r *Roster) ForSpecialties(specialties []string) *Attorney {
	for i := range r.Attorneys {
		a := &r.Attorneys[i]
		if a.Screening {
			continue
		}
		for _, want := range specialties {
			for _, have := range a.Specialties {
				if have == want || have == "all" {
					return a
				}
			}
		}
	}
	return r.ByID(RoleIntakeCoordinator)
}
