package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// ErrNoBrokers is returned by NewProducer when Config.Brokers is empty.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer publishes to any number of topics, holding one writer per topic.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]writer
	brokers   []string
	transport *kafkago.Transport
	dialer    *kafkago.Dialer
	newWriter func(topic string) writer
}

// NewProducer validates cfg and returns a Producer. No connection is made
// until the first Publish.
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	transport := &kafkago.Transport{ClientID: cfg.ClientID, TLS: cfg.TLS}
	if cfg.SASLMechanism != "" {
		mechanism, err := resolveSASL(cfg)
		if err != nil {
			return nil, err
		}
		transport.SASL = mechanism
	}

	p := &Producer{
		writers:   make(map[string]writer),
		brokers:   cfg.Brokers,
		transport: transport,
		dialer: &kafkago.Dialer{
			ClientID:      cfg.ClientID,
			TLS:           cfg.TLS,
			SASLMechanism: transport.SASL,
			Timeout:       5 * time.Second,
		},
	}
	p.newWriter = p.kafkaWriter
	return p, nil
}

func resolveSASL(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case "PLAIN":
		return plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}, nil
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram-sha-256: %w", err)
		}
		return m, nil
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram-sha-512: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}

// Publish sends messages to the specified topic.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.writerFor(topic)
	if err := w.WriteMessages(ctx, toKafkaMessages(messages)...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Ping opens and closes a connection to the first reachable broker.
func (p *Producer) Ping(ctx context.Context) error {
	var errs []error
	for _, broker := range p.brokers {
		conn, err := p.dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return conn.Close()
	}
	return fmt.Errorf("kafka ping: %w", errors.Join(errs...))
}

// Close closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing writer for topic %s: %w", topic, err))
		}
	}
	p.writers = make(map[string]writer)
	return errors.Join(errs...)
}

func (p *Producer) writerFor(topic string) writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

func (p *Producer) kafkaWriter(topic string) writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
		Transport:    p.transport,
	}
}

func toKafkaMessages(messages []Message) []kafkago.Message {
	out := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{Key: msg.Key, Value: msg.Value}
		for k, v := range msg.Headers {
			km.Headers = append(km.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		out = append(out, km)
	}
	return out
}
