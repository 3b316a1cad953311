package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/services/payment-service/internal/application/dto"
	"github.com/bibbank/bib/services/payment-service/internal/application/usecase"
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

// Response headers describing the rendered document.
const (
	HeaderMessageID    = "X-Message-Id"
	HeaderSchema       = "X-Pain-Schema"
	HeaderTransactions = "X-Transaction-Count"
	HeaderControlSum   = "X-Control-Sum"
)

// CreditTransferGenerator is implemented by usecase.GenerateCreditTransfer.
type CreditTransferGenerator interface {
	Execute(ctx context.Context, req dto.GenerateCreditTransferRequest) (dto.GenerateCreditTransferResponse, error)
}

// CreditTransferHandler serves pain.001 generation over HTTP.
type CreditTransferHandler struct {
	generator    CreditTransferGenerator
	maxBodyBytes int64
	middleware   []func(http.Handler) http.Handler
	logger       *slog.Logger
}

// NewCreditTransferHandler creates the handler. middleware wraps the
// generation endpoint only, in the given order.
func NewCreditTransferHandler(
	generator CreditTransferGenerator,
	maxBodyBytes int64,
	logger *slog.Logger,
	middleware ...func(http.Handler) http.Handler,
) *CreditTransferHandler {
	return &CreditTransferHandler{
		generator:    generator,
		maxBodyBytes: maxBodyBytes,
		middleware:   middleware,
		logger:       logger,
	}
}

type errorResponse struct {
	Error      string                 `json:"error"`
	Outcome    string                 `json:"outcome,omitempty"`
	Violations []validation.Violation `json:"violations,omitempty"`
}

type schemaInfo struct {
	Name           string `json:"name"`
	Namespace      string `json:"namespace"`
	SchemaLocation string `json:"schema_location"`
}

// Generate handles POST /v1/credit-transfers and answers with the XML document.
func (h *CreditTransferHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeGenerateCreditTransferRequest(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:   "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
				Outcome: usecase.OutcomeMalformed,
			})
			return
		}
		h.writeError(w, r, err)
		return
	}
	if q := r.URL.Query().Get("schema"); q != "" {
		req.Schema = q
	}

	resp, err := h.generator.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set(HeaderMessageID, resp.MessageID)
	w.Header().Set(HeaderSchema, resp.Schema)
	w.Header().Set(HeaderTransactions, strconv.Itoa(resp.Transactions))
	w.Header().Set(HeaderControlSum, resp.ControlSum)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.Document); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write document", "message_id", resp.MessageID, "error", err)
	}
}

// Schemas handles GET /v1/schemas.
func (h *CreditTransferHandler) Schemas(w http.ResponseWriter, _ *http.Request) {
	known := iso20022.KnownSchemas()
	out := make([]schemaInfo, 0, len(known))
	for _, s := range known {
		out = append(out, schemaInfo{Name: s.String(), Namespace: s.Namespace(), SchemaLocation: s.SchemaLocation()})
	}
	writeJSON(w, http.StatusOK, out)
}

// RegisterRoutes registers the credit transfer routes on mux.
func (h *CreditTransferHandler) RegisterRoutes(mux *http.ServeMux) {
	var generate http.Handler = http.HandlerFunc(h.Generate)
	for i := len(h.middleware) - 1; i >= 0; i-- {
		generate = h.middleware[i](generate)
	}
	mux.Handle("POST /v1/credit-transfers", generate)
	mux.HandleFunc("GET /v1/schemas", h.Schemas)
}

func (h *CreditTransferHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	outcome := usecase.Outcome(err)
	body := errorResponse{Error: err.Error(), Outcome: outcome}

	status := http.StatusInternalServerError
	switch outcome {
	case usecase.OutcomeMalformed, usecase.OutcomeUnknownSchema:
		status = http.StatusBadRequest
	case usecase.OutcomeInvalid:
		status = http.StatusUnprocessableEntity
		body.Violations, _ = validation.As(err)
	case usecase.OutcomeIncompatible:
		status = http.StatusConflict
	default:
		h.logger.ErrorContext(r.Context(), "credit transfer generation failed", "error", err)
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}
