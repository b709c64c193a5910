package request

import (
	"testing"

	"github.com/wesleyorama2/parry/dynamic"
)

func TestDescriptor_WithParamDoesNotMutateOriginal(t *testing.T) {
	base := Get("/users").WithParam("page", dynamic.NewNumber(1))
	derived := base.WithParam("limit", dynamic.NewNumber(50))

	if len(base.Params()) != 1 {
		t.Errorf("Expected original to keep 1 param, got %d", len(base.Params()))
	}
	if len(derived.Params()) != 2 {
		t.Errorf("Expected derived to have 2 params, got %d", len(derived.Params()))
	}
}

func TestDescriptor_ParamsReturnsCopy(t *testing.T) {
	d := Get("/users").WithParam("page", dynamic.NewNumber(1))
	snapshot := d.Params()
	snapshot["injected"] = dynamic.NewBool(true)

	if _, ok := d.Params()["injected"]; ok {
		t.Error("Mutating the returned map must not affect the descriptor")
	}
}

func TestDescriptor_WithNestingKey(t *testing.T) {
	d := Get("/users")
	keyed := d.WithNestingKey("data")

	if d.NestingKey() != "" {
		t.Errorf("Expected original nesting key to stay empty, got %q", d.NestingKey())
	}
	if keyed.NestingKey() != "data" {
		t.Errorf("Expected nesting key data, got %q", keyed.NestingKey())
	}
}

func TestDescriptor_BodyPresence(t *testing.T) {
	if NoBody().IsPresent() {
		t.Error("NoBody must not report a payload")
	}
	if !BodyOf(struct{}{}).IsPresent() {
		t.Error("BodyOf must report a payload")
	}
	if !DynamicBody(map[string]dynamic.Value{"a": dynamic.NewNull()}).IsPresent() {
		t.Error("DynamicBody must report a payload")
	}
}
