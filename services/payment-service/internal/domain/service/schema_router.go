package service

import (
	"errors"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/services/payment-service/internal/domain/model"
)

// ErrNoCompatibleSchema is returned when no supported variant can carry the message.
var ErrNoCompatibleSchema = errors.New("no compatible schema")

// SchemaRouter is a domain service that picks the schema variant for a
// message when the caller did not name one.
type SchemaRouter struct {
	preference []iso20022.Schema
}

// NewSchemaRouter creates a router that tries variants from the most
// restrictive to the most generic.
//
// Selection order:
//   - pain.001.002.03 when every leg is EUR/SEPA with BICs on both sides
//   - pain.001.003.03 for any other all-EUR message
//   - pain.001.001.03.ch.02 for all-CHF messages
//   - pain.001.001.03 otherwise
func NewSchemaRouter() *SchemaRouter {
	return &SchemaRouter{
		preference: []iso20022.Schema{
			iso20022.Pain00100203,
			iso20022.Pain00100303,
			iso20022.Pain00100103CH02,
			iso20022.Pain00100103,
		},
	}
}

// Select returns the first variant in preference order the message is compatible with.
func (r *SchemaRouter) Select(ct *model.CreditTransfer) (iso20022.Schema, error) {
	for _, schema := range r.preference {
		if ct.SchemaCompatible(schema) == nil {
			return schema, nil
		}
	}
	return "", ErrNoCompatibleSchema
}
