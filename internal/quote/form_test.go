package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(f Form, actions ...Action) Form {
	for _, a := range actions {
		f = Update(f, a)
	}
	return f
}

func set(name, value string) Action {
	return Action{Kind: SetField, Name: name, Value: value}
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	start := apply(NewForm(), set("name", "Ada"), Action{Kind: ToggleFeature, Value: "seo"})

	next := Update(start, Action{Kind: ToggleFeature, Value: "cms"})
	_ = Update(next, set("name", "Grace"))

	assert.Equal(t, "Ada", start.Fields.Name)
	assert.Equal(t, []string{"seo"}, start.Fields.Features)
	assert.Equal(t, []string{"seo", "cms"}, next.Fields.Features)
}

func TestUpdate_NextBlockedUntilStepValid(t *testing.T) {
	f := Update(NewForm(), Action{Kind: Next})
	assert.Equal(t, 1, f.Step)
	assert.Contains(t, f.Errors, "name")
	assert.Equal(t, "Email is required", f.Errors["email"])

	f = apply(f, set("name", "Ada"), set("email", "not-an-email"), Action{Kind: Next})
	assert.Equal(t, 1, f.Step)
	assert.Equal(t, "Please enter a valid email", f.Errors["email"])
	assert.NotContains(t, f.Errors, "name")

	f = apply(f, set("email", "ada@example.com"), Action{Kind: Next})
	assert.Equal(t, 2, f.Step)
	assert.Empty(t, f.Errors)
}

func TestUpdate_SetFieldClearsItsError(t *testing.T) {
	f := Update(NewForm(), Action{Kind: Next})
	require.Contains(t, f.Errors, "name")

	f = Update(f, set("name", "Ada"))
	assert.NotContains(t, f.Errors, "name")
	assert.Contains(t, f.Errors, "email")
}

func TestUpdate_WalkAllSteps(t *testing.T) {
	f := apply(NewForm(),
		set("name", "Ada"),
		set("email", "ada@example.com"),
		Action{Kind: Next},
		set("service_type", "web-dev"),
		set("project_title", "Shop"),
		set("description", "An online shop"),
		Action{Kind: Next},
		Action{Kind: ToggleFeature, Value: "seo"},
		Action{Kind: ToggleFeature, Value: "analytics"},
		Action{Kind: Next},
	)
	assert.Equal(t, 3, f.Step)
	assert.Equal(t, "Please select a timeline", f.Errors["timeline"])

	f = apply(f, set("timeline", TimelineFast), Action{Kind: Next})
	assert.Equal(t, 4, f.Step)
	assert.InDelta(t, 1440.0, f.Estimate, 1e-9)

	f = Update(f, Action{Kind: Next})
	assert.Equal(t, LastStep, f.Step)
	assert.Empty(t, ValidateAll(f.Fields))
}

func TestUpdate_BackStopsAtFirstStep(t *testing.T) {
	f := Update(NewForm(), Action{Kind: Back})
	assert.Equal(t, FirstStep, f.Step)

	f = Form{Step: 3, Fields: Fields{}}
	f = apply(f, Action{Kind: Back}, Action{Kind: Back}, Action{Kind: Back})
	assert.Equal(t, FirstStep, f.Step)
}

func TestUpdate_ToggleFeatureRecomputesEstimate(t *testing.T) {
	f := apply(NewForm(), set("service_type", "web-design"))
	assert.Equal(t, 200.0, f.Estimate)

	f = Update(f, Action{Kind: ToggleFeature, Value: "booking"})
	assert.Equal(t, 1400.0, f.Estimate)

	f = Update(f, Action{Kind: ToggleFeature, Value: "booking"})
	assert.Equal(t, 200.0, f.Estimate)
	assert.Empty(t, f.Fields.Features)
}

func TestUpdate_Reset(t *testing.T) {
	f := apply(NewForm(), set("name", "Ada"), set("service_type", "full-stack"), Action{Kind: Next})
	f = Update(f, Action{Kind: Reset})
	assert.Equal(t, NewForm(), f)
}

func TestUpdate_UnknownFieldIgnored(t *testing.T) {
	f := Update(NewForm(), set("estimate", "99999"))
	assert.Equal(t, NewForm(), f)
}

func TestValidateStep_FourHasNoRequirements(t *testing.T) {
	assert.Empty(t, ValidateStep(Fields{}, 4))
	assert.Len(t, ValidateAll(Fields{}), 6)
}
