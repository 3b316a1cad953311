package kafka

import "crypto/tls"

// Config holds Kafka connection parameters.
type Config struct {
	Brokers  []string
	ClientID string

	// TLS enables encrypted connections when non-nil.
	TLS *tls.Config

	// SASLMechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512". Empty
	// disables SASL.
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}
