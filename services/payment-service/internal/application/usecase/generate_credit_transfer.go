package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/services/payment-service/internal/application/dto"
	"github.com/bibbank/bib/services/payment-service/internal/domain/event"
	"github.com/bibbank/bib/services/payment-service/internal/domain/model"
	"github.com/bibbank/bib/services/payment-service/internal/domain/port"
	"github.com/bibbank/bib/services/payment-service/internal/domain/service"
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

const TopicCreditTransfers = "bib.payment.credit-transfers"

// SchemaAuto asks the schema router to pick the variant.
const SchemaAuto = "auto"

// Outcome label values of the documents counter.
const (
	OutcomeGenerated     = "generated"
	OutcomeInvalid       = "invalid"
	OutcomeIncompatible  = "incompatible"
	OutcomeUnknownSchema = "unknown_schema"
	OutcomeMalformed     = "malformed"
	OutcomeError         = "error"
)

// GenerateCreditTransfer turns a request into a pain.001 document.
type GenerateCreditTransfer struct {
	publisher     port.EventPublisher
	router        *service.SchemaRouter
	logger        *slog.Logger
	documents     metric.Int64Counter
	transactions  metric.Int64Histogram
	defaultSchema string
	now           func() time.Time
	newMessageID  func() string
}

// Option configures GenerateCreditTransfer.
type Option func(*GenerateCreditTransfer)

// WithDefaultSchema sets the schema used when a request names none.
func WithDefaultSchema(name string) Option {
	return func(uc *GenerateCreditTransfer) {
		uc.defaultSchema = name
	}
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(uc *GenerateCreditTransfer) {
		uc.now = now
	}
}

// WithMessageIDGenerator overrides message identifier minting.
func WithMessageIDGenerator(gen func() string) Option {
	return func(uc *GenerateCreditTransfer) {
		uc.newMessageID = gen
	}
}

func NewGenerateCreditTransfer(
	publisher port.EventPublisher,
	router *service.SchemaRouter,
	meter metric.Meter,
	logger *slog.Logger,
	opts ...Option,
) (*GenerateCreditTransfer, error) {
	documents, err := meter.Int64Counter("credit_transfer_documents",
		metric.WithDescription("pain.001 generation attempts by schema and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create documents counter: %w", err)
	}
	transactions, err := meter.Int64Histogram("credit_transfer_transactions",
		metric.WithDescription("Transactions per generated pain.001 document"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 5000),
	)
	if err != nil {
		return nil, fmt.Errorf("create transactions histogram: %w", err)
	}

	uc := &GenerateCreditTransfer{
		publisher:     publisher,
		router:        router,
		logger:        logger,
		documents:     documents,
		transactions:  transactions,
		defaultSchema: SchemaAuto,
		now:           time.Now,
		newMessageID:  model.NewMessageID,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc, nil
}

func (uc *GenerateCreditTransfer) Execute(ctx context.Context, req dto.GenerateCreditTransferRequest) (dto.GenerateCreditTransferResponse, error) {
	requested := req.Schema
	if requested == "" {
		requested = uc.defaultSchema
	}

	resp, err := uc.generate(ctx, requested, req)
	if err != nil {
		uc.reject(ctx, requested, err)
		return dto.GenerateCreditTransferResponse{}, err
	}
	return resp, nil
}

func (uc *GenerateCreditTransfer) generate(ctx context.Context, requested string, req dto.GenerateCreditTransferRequest) (dto.GenerateCreditTransferResponse, error) {
	ct := model.NewCreditTransfer(req.Account.ToModel(),
		model.WithClock(uc.now),
		model.WithIDGenerator(uc.newMessageID),
	)
	for i, tr := range req.Transactions {
		tx, err := tr.ToModel()
		if err != nil {
			return dto.GenerateCreditTransferResponse{}, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		if err := ct.AddTransaction(tx); err != nil {
			return dto.GenerateCreditTransferResponse{}, fmt.Errorf("transactions[%d]: %w", i, err)
		}
	}

	schema := iso20022.Schema(requested)
	if requested == SchemaAuto {
		selected, err := uc.router.Select(ct)
		if err != nil {
			return dto.GenerateCreditTransferResponse{}, fmt.Errorf("%w: %w", model.ErrIncompatibleSchema, err)
		}
		schema = selected
	}

	doc, err := ct.ToXML(schema)
	if err != nil {
		return dto.GenerateCreditTransferResponse{}, err
	}

	recorded := ct.ClearEvents()
	resp := dto.GenerateCreditTransferResponse{Schema: schema.String(), Document: doc}
	for _, e := range recorded {
		if generated, ok := e.(event.DocumentGenerated); ok {
			resp.MessageID = generated.MessageID
			resp.Transactions = generated.Transactions
			resp.ControlSum = generated.ControlSum
		}
	}

	if err := uc.publisher.Publish(ctx, TopicCreditTransfers, recorded...); err != nil {
		return dto.GenerateCreditTransferResponse{}, fmt.Errorf("failed to publish events: %w", err)
	}

	uc.documents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("schema", resp.Schema),
		attribute.String("outcome", OutcomeGenerated),
	))
	uc.transactions.Record(ctx, int64(resp.Transactions), metric.WithAttributes(
		attribute.String("schema", resp.Schema),
	))
	uc.logger.InfoContext(ctx, "credit transfer generated",
		"message_id", resp.MessageID,
		"schema", resp.Schema,
		"transactions", resp.Transactions,
		"control_sum", resp.ControlSum,
	)
	return resp, nil
}

func (uc *GenerateCreditTransfer) reject(ctx context.Context, requested string, cause error) {
	schema := schemaLabel(requested)
	outcome := Outcome(cause)

	uc.documents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("schema", schema),
		attribute.String("outcome", outcome),
	))
	uc.logger.WarnContext(ctx, "credit transfer rejected",
		"schema", schema,
		"outcome", outcome,
		"error", cause,
	)

	rejected, err := event.NewDocumentRejected(uuid.NewString(), schema, cause.Error(), uc.now())
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to build rejection event", "error", err)
		return
	}
	if err := uc.publisher.Publish(ctx, TopicCreditTransfers, rejected); err != nil {
		uc.logger.ErrorContext(ctx, "failed to publish rejection", "error", err)
	}
}

// Outcome classifies a generation error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeGenerated
	case errors.Is(err, model.ErrUnknownSchema):
		return OutcomeUnknownSchema
	case errors.Is(err, model.ErrIncompatibleSchema):
		return OutcomeIncompatible
	case errors.Is(err, validation.ErrInvalid):
		return OutcomeInvalid
	case errors.Is(err, dto.ErrMalformed), errors.Is(err, dto.ErrUnknownField):
		return OutcomeMalformed
	default:
		return OutcomeError
	}
}

// schemaLabel keeps arbitrary caller input out of metric labels.
func schemaLabel(name string) string {
	if name == SchemaAuto || iso20022.Schema(name).Known() {
		return name
	}
	return "unknown"
}
