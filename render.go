package jsonxsd

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/brettsor/jsonxsd/format"
	"github.com/brettsor/jsonxsd/typegraph"
)

// RenderOptions configures a single Render call. A fresh
// RenderOptions is expected per render; nothing here is mutated.
type RenderOptions struct {
	// Basename is used to compute the noNamespaceSchemaLocation in the
	// emitted XML and has no ".xsd"/".xml" suffix.
	Basename string
	// Recognizer classifies date/time/date-time/uri strings. Defaults
	// to format.Default() when nil.
	Recognizer format.Recognizer
	// Logger receives one debug event per pipeline stage and one error
	// event on failure. Defaults to a disabled (no-op) logger when nil.
	Logger *zerolog.Logger
}

// Result carries everything a caller needs after a successful render:
// the two output documents and the index, which Decode can reuse
// without re-parsing the XSD. The CLI's summarize and convert commands
// do not use it; they rebuild an Index from a stored file.
type Result struct {
	XSD   []byte
	XML   []byte
	Index *Index
}

// Render wires C1 through C7 for one input document. It
// lowers the graph, resolves top-level elements, re-parses the
// resulting schema into an Index, then converts input into an XML
// tree, and renders both documents to bytes. Every internal failure is
// surfaced as a *Error with a taxonomy kind.
func Render(ctx context.Context, graph typegraph.Graph, input any, opts RenderOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, ioError("render canceled before starting", err)
	}

	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	rec := opts.Recognizer
	if rec == nil {
		rec = format.Default()
	}

	schemaNode, err := lower(graph)
	if err != nil {
		log.Error().Str("kind", errorKindOf(err).String()).Msg("lower failed")
		return nil, err
	}
	log.Debug().
		Int("children", len(schemaNode.children)).
		Msg("lower complete")

	xsdBytes := []byte(schemaNode.render())
	log.Debug().Int("bytes", len(xsdBytes)).Msg("resolve complete")

	idx, err := buildIndex(xsdBytes)
	if err != nil {
		log.Error().Str("kind", errorKindOf(err).String()).Msg("index failed")
		return nil, err
	}
	log.Debug().
		Int("complexTypes", len(idx.complexTypes)).
		Int("simpleTypes", len(idx.simpleTypes)).
		Int("elements", len(idx.topElements)).
		Msg("index complete")

	xsdFileName := opts.Basename + ".xsd"
	cv := newConverter(idx, rec, xsdFileName)
	xmlTree, err := cv.JSONToXML(graph.RootTag(), input)
	if err != nil {
		log.Error().Str("kind", errorKindOf(err).String()).Msg("convert failed")
		return nil, err
	}
	xmlBytes := []byte(xmlTree.render())
	log.Debug().Int("bytes", len(xmlBytes)).Msg("convert complete")

	return &Result{XSD: xsdBytes, XML: xmlBytes, Index: idx}, nil
}

// Decode runs the reverse direction of a render: given an already-built
// Index (typically Result.Index from a prior Render, or BuildIndex
// applied to a stored .xsd file) and a rendered XML document's bytes,
// it reconstructs the JSON value the document encodes.
func Decode(idx *Index, xmlBytes []byte, rec format.Recognizer) (any, error) {
	if rec == nil {
		rec = format.Default()
	}
	root, err := parseXMLDocument(xmlBytes)
	if err != nil {
		return nil, err
	}
	cv := newConverter(idx, rec, "")
	return cv.XMLToJSON(root)
}

func errorKindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternalError
}
