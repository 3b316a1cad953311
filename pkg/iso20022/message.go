package iso20022

import "fmt"

// Schema identifies a pain.001 schema variant by its published name.
type Schema string

const (
	// Generic ISO 20022 customer credit transfer initiation.
	Pain00100103 Schema = "pain.001.001.03"
	// SEPA credit transfer as published by the EPC (BIC mandatory).
	Pain00100203 Schema = "pain.001.002.03"
	// SEPA credit transfer, German banking industry flavour (BIC optional).
	Pain00100303 Schema = "pain.001.003.03"
	// Swiss Payment Standards variant published by SIX Interbank Clearing.
	Pain00100103CH02 Schema = "pain.001.001.03.ch.02"
)

const (
	isoNamespacePrefix = "urn:iso:std:iso:20022:tech:xsd:"
	sixNamespacePrefix = "http://www.six-interbank-clearing.com/de/"

	// XMLSchemaInstance is the namespace bound to the xsi prefix.
	XMLSchemaInstance = "http://www.w3.org/2001/XMLSchema-instance"
)

var knownSchemas = []Schema{Pain00100103, Pain00100203, Pain00100303, Pain00100103CH02}

// KnownSchemas returns every schema variant the document builder can emit.
func KnownSchemas() []Schema {
	return append([]Schema(nil), knownSchemas...)
}

// ParseSchema validates a schema name.
func ParseSchema(name string) (Schema, error) {
	s := Schema(name)
	if !s.Known() {
		return "", fmt.Errorf("schema %q is unknown", name)
	}
	return s, nil
}

// Known reports whether s is one of the supported variants.
func (s Schema) Known() bool {
	for _, k := range knownSchemas {
		if s == k {
			return true
		}
	}
	return false
}

// Namespace returns the default namespace of the Document root element.
func (s Schema) Namespace() string {
	if s == Pain00100103CH02 {
		return sixNamespacePrefix + string(s) + ".xsd"
	}
	return isoNamespacePrefix + string(s)
}

// SchemaLocation returns the xsi:schemaLocation value for the root element.
func (s Schema) SchemaLocation() string {
	if s == Pain00100103CH02 {
		return s.Namespace() + " " + s.Namespace()
	}
	return s.Namespace() + " " + string(s) + ".xsd"
}

func (s Schema) String() string {
	return string(s)
}
