// Package jsonxsd synthesizes an XSD schema and a matching XML
// document from a JSON sample, and can reverse that translation given
// the schema and a document rendered against it.
//
// Render lowers a consumed type graph (see package typegraph) into XSD
// constructs, resolves top-level elements with collision-disambiguated
// names, re-parses the emitted schema into a path-indexed dictionary,
// and converts the input value into an XML tree in lock-step with that
// index. Decode runs the same index-driven walk in reverse, turning a
// rendered XML document back into the JSON value it encodes.
package jsonxsd
