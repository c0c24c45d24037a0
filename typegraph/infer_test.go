package typegraph

import (
	"bytes"
	"encoding/json"
	"testing"
)

type stubRecognizer struct{}

func (stubRecognizer) IsDate(s string) bool     { return s == "15/03/2024" }
func (stubRecognizer) IsTime(s string) bool     { return s == "14:30" }
func (stubRecognizer) IsDateTime(s string) bool { return s == "2024-03-15T14:30:00Z" }
func (stubRecognizer) IsURI(s string) bool      { return s == "https://example.com/a.b" }

func decode(t *testing.T, js string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(js)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", js, err)
	}
	return v
}

func TestInferPrimitiveKinds(t *testing.T) {
	sample := decode(t, `{"n": null, "b": true, "i": 3, "f": 3.5, "s": "plain"}`)
	g, err := Infer(sample, "root", stubRecognizer{})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	root, ok := g.Resolve(g.Root())
	if !ok || root.Kind() != KindClass {
		t.Fatalf("expected root class, got %v", root)
	}
	want := map[string]Kind{"n": KindNull, "b": KindBool, "i": KindInteger, "f": KindDouble, "s": KindString}
	for _, p := range root.Props() {
		k, ok := want[p.Name]
		if !ok {
			t.Fatalf("unexpected property %q", p.Name)
		}
		node, ok := g.Resolve(p.Type)
		if !ok {
			t.Fatalf("property %q does not resolve", p.Name)
		}
		if node.Kind() != k {
			t.Errorf("property %q: got kind %v, want %v", p.Name, node.Kind(), k)
		}
	}
}

func TestInferTransformedStrings(t *testing.T) {
	sample := decode(t, `{"d": "15/03/2024", "t": "14:30", "dt": "2024-03-15T14:30:00Z", "u": "https://example.com/a.b"}`)
	g, err := Infer(sample, "root", stubRecognizer{})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	root, _ := g.Resolve(g.Root())
	want := map[string]Format{"d": FormatDate, "t": FormatTime, "dt": FormatDateTime, "u": FormatURI}
	for _, p := range root.Props() {
		node, _ := g.Resolve(p.Type)
		if node.Kind() != KindTransformedString {
			t.Fatalf("property %q: expected transformed string, got %v", p.Name, node.Kind())
		}
		if node.Format() != want[p.Name] {
			t.Errorf("property %q: got format %v, want %v", p.Name, node.Format(), want[p.Name])
		}
	}
}

func TestInferArrayUsesFirstNonNilItem(t *testing.T) {
	sample := decode(t, `{"items": [null, 1, 2]}`)
	g, err := Infer(sample, "root", stubRecognizer{})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	root, _ := g.Resolve(g.Root())
	items := root.Props()[0]
	arr, _ := g.Resolve(items.Type)
	if arr.Kind() != KindArray {
		t.Fatalf("expected array, got %v", arr.Kind())
	}
	item, _ := g.Resolve(arr.Items())
	if item.Kind() != KindInteger {
		t.Errorf("expected first non-nil item to drive array item kind, got %v", item.Kind())
	}
}

func TestInferEmptyArrayIsAny(t *testing.T) {
	sample := decode(t, `{"items": []}`)
	g, err := Infer(sample, "root", stubRecognizer{})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	root, _ := g.Resolve(g.Root())
	arr, _ := g.Resolve(root.Props()[0].Type)
	item, _ := g.Resolve(arr.Items())
	if item.Kind() != KindAny {
		t.Errorf("expected empty array item to be KindAny, got %v", item.Kind())
	}
}

func TestInferDeterministicPropertyOrder(t *testing.T) {
	sample := decode(t, `{"z": 1, "a": 2, "m": 3}`)
	g, err := Infer(sample, "root", stubRecognizer{})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	root, _ := g.Resolve(g.Root())
	got := make([]string, len(root.Props()))
	for i, p := range root.Props() {
		got[i] = p.Name
	}
	want := []string{"a", "m", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("property order = %v, want %v", got, want)
		}
	}
}

func TestInferNoRecognizerFallsBackToString(t *testing.T) {
	sample := decode(t, `{"s": "15/03/2024"}`)
	g, err := Infer(sample, "root", nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	root, _ := g.Resolve(g.Root())
	s, _ := g.Resolve(root.Props()[0].Type)
	if s.Kind() != KindString {
		t.Errorf("expected plain string without a recognizer, got %v", s.Kind())
	}
}
