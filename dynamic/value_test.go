package dynamic

import (
	"encoding/json"
	"testing"
)

func TestParse_Kinds(t *testing.T) {
	v, err := Parse([]byte(`{"name":"Ada","age":36,"admin":true,"tags":["a","b"],"meta":null}`))
	if err != nil {
		t.Fatalf("Error parsing: %v", err)
	}
	if v.Kind() != Object {
		t.Fatalf("Expected object, got kind %d", v.Kind())
	}

	tests := []struct {
		key  string
		kind Kind
	}{
		{"name", String},
		{"age", Number},
		{"admin", Bool},
		{"tags", Array},
		{"meta", Null},
		{"absent", Null},
	}
	for _, tt := range tests {
		if got := v.Get(tt.key).Kind(); got != tt.kind {
			t.Errorf("Expected %s to have kind %d, got %d", tt.key, tt.kind, got)
		}
	}
}

func TestParse_Accessors(t *testing.T) {
	v, err := Parse([]byte(`{"name":"Ada","age":36,"admin":true,"tags":[1,2]}`))
	if err != nil {
		t.Fatalf("Error parsing: %v", err)
	}
	if got := v.Get("name").StringValue(); got != "Ada" {
		t.Errorf("Expected Ada, got %q", got)
	}
	if got := v.Get("age").NumberValue(); got != 36 {
		t.Errorf("Expected 36, got %v", got)
	}
	if !v.Get("admin").BoolValue() {
		t.Error("Expected admin true")
	}
	tags := v.Get("tags").ArrayValue()
	if len(tags) != 2 || tags[0].NumberValue() != 1 {
		t.Errorf("Unexpected array %v", tags)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{broken`)); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"Null", NewNull(), "null"},
		{"Bool", NewBool(true), "true"},
		{"Integer number", NewNumber(10), "10"},
		{"Fractional number", NewNumber(3.5), "3.5"},
		{"String verbatim", NewString("hello world"), "hello world"},
		{"Array as JSON", NewArray(NewNumber(1), NewNumber(2)), "[1,2]"},
		{"Object as JSON", NewObject(map[string]Value{"a": NewBool(false)}), `{"a":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Text(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original := NewObject(map[string]Value{
		"name": NewString("Ada"),
		"tags": NewArray(NewString("x"), NewNumber(2), NewNull()),
	})
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Error marshaling: %v", err)
	}

	var decoded Value
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Error unmarshaling: %v", err)
	}
	if decoded.Get("name").StringValue() != "Ada" {
		t.Errorf("Expected name Ada, got %q", decoded.Get("name").StringValue())
	}
	tags := decoded.Get("tags").ArrayValue()
	if len(tags) != 3 {
		t.Fatalf("Expected 3 tags, got %d", len(tags))
	}
	if tags[2].Kind() != Null {
		t.Errorf("Expected trailing null, got kind %d", tags[2].Kind())
	}
}

func TestGet_NonObject(t *testing.T) {
	if got := NewNumber(1).Get("x").Kind(); got != Null {
		t.Errorf("Expected null for field of non-object, got kind %d", got)
	}
}
