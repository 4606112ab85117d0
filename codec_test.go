package alertz

import (
	"strings"
	"testing"
)

type codecDoc struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}

	var doc codecDoc
	if err := codec.Unmarshal([]byte(`{"name":"inbox","count":2}`), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Name != "inbox" || doc.Count != 2 {
		t.Errorf("unexpected doc %+v", doc)
	}

	data, err := codec.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"name":"inbox","count":2}` {
		t.Errorf("unexpected JSON %s", data)
	}

	if codec.ContentType() != "application/json" {
		t.Errorf("expected 'application/json', got %q", codec.ContentType())
	}
}

func TestJSONCodec_InvalidInput(t *testing.T) {
	var doc codecDoc
	if err := (JSONCodec{}).Unmarshal([]byte("name: inbox"), &doc); err == nil {
		t.Error("expected error for YAML input")
	}
}

func TestYAMLCodec(t *testing.T) {
	codec := YAMLCodec{}

	var doc codecDoc
	if err := codec.Unmarshal([]byte("name: inbox\ncount: 2\n"), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Name != "inbox" || doc.Count != 2 {
		t.Errorf("unexpected doc %+v", doc)
	}

	data, err := codec.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "name: inbox\ncount: 2\n" {
		t.Errorf("unexpected YAML %q", data)
	}

	if codec.ContentType() != "application/x-yaml" {
		t.Errorf("expected 'application/x-yaml', got %q", codec.ContentType())
	}
}

func TestAutoCodec_Detects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "json", input: `{"name":"inbox","count":2}`},
		{name: "json with leading whitespace", input: "\n  {\"name\":\"inbox\",\"count\":2}"},
		{name: "yaml", input: "name: inbox\ncount: 2"},
		{name: "yaml with comment", input: "name: inbox\ncount: 2\n# {not json}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc codecDoc
			if err := (AutoCodec{}).Unmarshal([]byte(tt.input), &doc); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if doc.Name != "inbox" || doc.Count != 2 {
				t.Errorf("unexpected doc %+v", doc)
			}
		})
	}
}

func TestAutoCodec_MarshalsYAML(t *testing.T) {
	data, err := (AutoCodec{}).Marshal(codecDoc{Name: "inbox", Count: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "name: inbox") {
		t.Errorf("expected YAML output, got %q", data)
	}
	if (AutoCodec{}).ContentType() != "application/x-yaml" {
		t.Errorf("expected 'application/x-yaml', got %q", (AutoCodec{}).ContentType())
	}
}

func TestAutoCodec_InvalidJSON(t *testing.T) {
	var doc codecDoc
	if err := (AutoCodec{}).Unmarshal([]byte(`{"name": `), &doc); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
