package jsonxsd

import "encoding/xml"

// The types below mirror the shape C4/C5 emit, used by C6 to re-parse
// the freshly rendered XSD text back into a decoded tree that the
// indexer walks to rebuild its path-indexed dictionaries. The struct
// tags match on namespace URI rather than prefix, so the schema
// prefix in use (xs:, xsd:, or none) is irrelevant to decoding.

type xsdDocSchema struct {
	XMLName      xml.Name         `xml:"http://www.w3.org/2001/XMLSchema schema"`
	SimpleTypes  []xsdDocSimple   `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
	ComplexTypes []xsdDocComplex  `xml:"http://www.w3.org/2001/XMLSchema complexType"`
	Elements     []xsdDocElement  `xml:"http://www.w3.org/2001/XMLSchema element"`
}

type xsdDocElement struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`
}

type xsdDocComplex struct {
	Name     string        `xml:"name,attr"`
	All      *xsdDocAll    `xml:"http://www.w3.org/2001/XMLSchema all"`
	Sequence *xsdDocSeq    `xml:"http://www.w3.org/2001/XMLSchema sequence"`
}

type xsdDocAll struct {
	Elements []xsdDocElement `xml:"http://www.w3.org/2001/XMLSchema element"`
}

type xsdDocSeq struct {
	Elements []xsdDocElement `xml:"http://www.w3.org/2001/XMLSchema element"`
}

type xsdDocSimple struct {
	Name        string           `xml:"name,attr"`
	Union       *xsdDocUnion     `xml:"http://www.w3.org/2001/XMLSchema union"`
	Restriction *xsdDocRestrict  `xml:"http://www.w3.org/2001/XMLSchema restriction"`
}

type xsdDocUnion struct {
	SimpleTypes []xsdDocSimple `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
}

type xsdDocRestrict struct {
	Base    string        `xml:"base,attr"`
	Pattern *xsdDocFacet  `xml:"http://www.w3.org/2001/XMLSchema pattern"`
	Length  *xsdDocFacet  `xml:"http://www.w3.org/2001/XMLSchema length"`
}

type xsdDocFacet struct {
	Value string `xml:"value,attr"`
}
