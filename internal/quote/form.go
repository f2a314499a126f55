package quote

import (
	"regexp"
	"strings"
)

const (
	FirstStep = 1
	LastStep  = 4
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidEmail is the loose address check used by every public form.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Fields are the values collected across the four form steps.
type Fields struct {
	// step 1
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	// step 2
	ServiceType  string `json:"service_type"`
	ProjectTitle string `json:"project_title"`
	Description  string `json:"description"`
	// step 3
	Features []string `json:"features"`
	Timeline string   `json:"timeline"`
	Budget   string   `json:"budget"`
	// step 4
	HasExistingWebsite string `json:"has_existing_website"`
	PreferredStyle     string `json:"preferred_style"`
	TargetAudience     string `json:"target_audience"`
	AdditionalNotes    string `json:"additional_notes"`
}

func (f Fields) clone() Fields {
	out := f
	out.Features = append([]string{}, f.Features...)
	return out
}

// set assigns a scalar field by its JSON name. Unknown names are ignored.
func (f *Fields) set(name, value string) bool {
	switch name {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "company":
		f.Company = value
	case "service_type":
		f.ServiceType = value
	case "project_title":
		f.ProjectTitle = value
	case "description":
		f.Description = value
	case "timeline":
		f.Timeline = value
	case "budget":
		f.Budget = value
	case "has_existing_website":
		f.HasExistingWebsite = value
	case "preferred_style":
		f.PreferredStyle = value
	case "target_audience":
		f.TargetAudience = value
	case "additional_notes":
		f.AdditionalNotes = value
	default:
		return false
	}
	return true
}

// ValidateStep returns the field errors for one step, keyed by JSON field
// name. An empty map means the step is complete.
func ValidateStep(f Fields, step int) map[string]string {
	errs := map[string]string{}
	switch step {
	case 1:
		if strings.TrimSpace(f.Name) == "" {
			errs["name"] = "Full name is required"
		}
		if strings.TrimSpace(f.Email) == "" {
			errs["email"] = "Email is required"
		} else if !ValidEmail(f.Email) {
			errs["email"] = "Please enter a valid email"
		}
	case 2:
		if f.ServiceType == "" {
			errs["service_type"] = "Please select a service"
		}
		if strings.TrimSpace(f.ProjectTitle) == "" {
			errs["project_title"] = "Project title is required"
		}
		if strings.TrimSpace(f.Description) == "" {
			errs["description"] = "Project description is required"
		}
	case 3:
		if f.Timeline == "" {
			errs["timeline"] = "Please select a timeline"
		}
	}
	return errs
}

// ValidateAll merges the errors of every step.
func ValidateAll(f Fields) map[string]string {
	errs := map[string]string{}
	for step := FirstStep; step <= LastStep; step++ {
		for k, v := range ValidateStep(f, step) {
			errs[k] = v
		}
	}
	return errs
}

// Form is the serializable state of the stepped quote form.
type Form struct {
	Step     int               `json:"step"`
	Fields   Fields            `json:"fields"`
	Errors   map[string]string `json:"errors"`
	Estimate float64           `json:"estimate"`
}

// NewForm returns an empty form on the first step.
func NewForm() Form {
	return Form{
		Step:   FirstStep,
		Fields: Fields{Features: []string{}},
		Errors: map[string]string{},
	}
}

type ActionKind int

const (
	SetField ActionKind = iota + 1
	ToggleFeature
	Next
	Back
	Reset
)

// Action is one user interaction. Name and Value are used by SetField,
// Value alone by ToggleFeature.
type Action struct {
	Kind  ActionKind
	Name  string
	Value string
}

// Update applies a to f and returns the new state. f is never modified and
// the estimate is recomputed after every action.
func Update(f Form, a Action) Form {
	next := Form{
		Step:   f.Step,
		Fields: f.Fields.clone(),
		Errors: make(map[string]string, len(f.Errors)),
	}
	for k, v := range f.Errors {
		next.Errors[k] = v
	}
	if next.Step < FirstStep {
		next.Step = FirstStep
	}

	switch a.Kind {
	case SetField:
		if next.Fields.set(a.Name, a.Value) {
			delete(next.Errors, a.Name)
		}
	case ToggleFeature:
		next.Fields.Features = toggle(next.Fields.Features, a.Value)
	case Next:
		errs := ValidateStep(next.Fields, next.Step)
		next.Errors = errs
		if len(errs) == 0 && next.Step < LastStep {
			next.Step++
		}
	case Back:
		if next.Step > FirstStep {
			next.Step--
		}
	case Reset:
		next = NewForm()
	}

	next.Estimate = Estimate(next.Fields.ServiceType, next.Fields.Features, next.Fields.Timeline)
	return next
}

func toggle(list []string, id string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, v := range list {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
