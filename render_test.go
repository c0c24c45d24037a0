package jsonxsd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/brettsor/jsonxsd/format"
	"github.com/brettsor/jsonxsd/internal/xsdvalidate"
	"github.com/brettsor/jsonxsd/typegraph"
)

// buildPersonGraph assembles a small class graph by hand: a person
// with a name, an age, and an optional signup date.
func buildPersonGraph(t *testing.T) typegraph.Graph {
	t.Helper()
	b := typegraph.NewBuilder()
	name := b.Primitive(typegraph.KindString)
	age := b.Primitive(typegraph.KindInteger)
	signup := b.TransformedString(typegraph.FormatDate)
	person := b.Class([]typegraph.Property{
		{Name: "name", Type: name},
		{Name: "age", Type: age},
		{Name: "signupDate", Type: signup, Optional: true},
	})
	b.SetRoot(person, "person")
	g, ok := b.Build()
	if !ok {
		t.Fatal("builder did not produce a graph")
	}
	return g
}

func mustRender(t *testing.T, graph typegraph.Graph, input any) *Result {
	t.Helper()
	rec := format.New(language.English)
	result, err := Render(context.Background(), graph, input, RenderOptions{
		Basename:   "person",
		Recognizer: rec,
	})
	require.NoError(t, err, "Render failed")
	return result
}

func TestRenderProducesConsistentXSDAndXML(t *testing.T) {
	graph := buildPersonGraph(t)
	input := map[string]any{
		"name":       "John Doe",
		"age":        30,
		"signupDate": "15/03/2024",
	}
	result := mustRender(t, graph, input)

	assert.Contains(t, string(result.XSD), `<xsd:element name="person"`, "rendered XSD missing person root element")
	assert.Contains(t, string(result.XML), "<person", "rendered XML missing person root")

	schema, err := xsdvalidate.ParseXSD(result.XSD)
	require.NoError(t, err, "round-trip: failed to parse rendered XSD")
	document, err := xsdvalidate.Parse(result.XML)
	require.NoError(t, err, "round-trip: failed to parse rendered XML")
	assert.NoError(t, schema.Validate(document), "rendered XML does not validate against its own rendered XSD")
}

func TestRenderOmittedOptionalFieldStillValidates(t *testing.T) {
	graph := buildPersonGraph(t)
	input := map[string]any{
		"name": "Jane Smith",
		"age":  42,
	}
	result := mustRender(t, graph, input)

	schema, err := xsdvalidate.ParseXSD(result.XSD)
	require.NoError(t, err, "round-trip: failed to parse rendered XSD")
	document, err := xsdvalidate.Parse(result.XML)
	require.NoError(t, err, "round-trip: failed to parse rendered XML")
	assert.NoError(t, schema.Validate(document), "rendered XML with omitted optional field does not validate")
}

func TestDecodeReversesRender(t *testing.T) {
	graph := buildPersonGraph(t)
	input := map[string]any{
		"name":       "John Doe",
		"age":        float64(30),
		"signupDate": "15/03/2024",
	}
	result := mustRender(t, graph, input)

	rec := format.New(language.English)
	decoded, err := Decode(result.Index, result.XML, rec)
	require.NoError(t, err, "Decode failed")
	obj, ok := decoded.(map[string]any)
	require.True(t, ok, "decoded value is %T, want map[string]any", decoded)
	assert.Equal(t, "John Doe", obj["name"])
	assert.Equal(t, float64(30), obj["age"])
	assert.Equal(t, "15/03/2024", obj["signupDate"])
}

func TestRenderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	graph := buildPersonGraph(t)
	_, err := Render(ctx, graph, map[string]any{"name": "x", "age": 1}, RenderOptions{Basename: "person"})
	require.Error(t, err, "expected an error for a canceled context")
	e, ok := err.(*Error)
	require.True(t, ok, "expected a *Error, got %T", err)
	assert.Equal(t, KindIOError, e.Kind)
}
