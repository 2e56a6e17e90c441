package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/format"
	"github.com/josh-kwaku/travelmate/internal/ledger"
	"github.com/josh-kwaku/travelmate/internal/logging"
	"github.com/josh-kwaku/travelmate/internal/service"
)

type settlementService interface {
	Compute(ctx context.Context, tripID uuid.UUID) (*ledger.Settlement, error)
	ConfirmTransfer(ctx context.Context, tripID uuid.UUID, in service.ConfirmTransferInput) (*domain.CompletedTransfer, error)
	ListTransfers(ctx context.Context, tripID uuid.UUID) ([]domain.CompletedTransfer, error)
}

type SettlementHandler struct {
	settlements  settlementService
	baseCurrency string
}

func NewSettlementHandler(settlements settlementService, baseCurrency string) *SettlementHandler {
	return &SettlementHandler{settlements: settlements, baseCurrency: baseCurrency}
}

// confirmTransferRequest keeps amount raw: numbers and numeric strings are
// both accepted, anything else is recorded as zero.
type confirmTransferRequest struct {
	Payer    string          `json:"payer"`
	Receiver string          `json:"receiver"`
	Amount   json.RawMessage `json:"amount"`
}

func (r confirmTransferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Payer == "" {
		errs = append(errs, FieldError{Field: "payer", Message: "required"})
	}
	if r.Receiver == "" {
		errs = append(errs, FieldError{Field: "receiver", Message: "required"})
	}
	return errs
}

func (r confirmTransferRequest) rawAmount() string {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

type positionDTO struct {
	ParticipantID     int64           `json:"participant_id"`
	Name              string          `json:"name"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalPaidDisplay  string          `json:"total_paid_display"`
	TotalShare        decimal.Decimal `json:"total_share"`
	TotalShareDisplay string          `json:"total_share_display"`
	RawBalance        decimal.Decimal `json:"raw_balance"`
	Balance           decimal.Decimal `json:"balance"`
	BalanceDisplay    string          `json:"balance_display"`
	FinalPaid         decimal.Decimal `json:"final_paid"`
	FinalPaidDisplay  string          `json:"final_paid_display"`
}

type suggestionDTO struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amount_display"`
}

type settlementDTO struct {
	TripID       uuid.UUID       `json:"trip_id"`
	BaseCurrency string          `json:"base_currency"`
	Positions    []positionDTO   `json:"positions"`
	Suggestions  []suggestionDTO `json:"suggestions"`
}

type transferDTO struct {
	ID            uuid.UUID `json:"id"`
	Payer         string    `json:"payer"`
	Receiver      string    `json:"receiver"`
	Amount        int64     `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	Done          bool      `json:"done"`
	DoneAt        time.Time `json:"done_at"`
}

func toSettlementDTO(tripID uuid.UUID, s *ledger.Settlement, base string) settlementDTO {
	positions := make([]positionDTO, len(s.Positions))
	for i, p := range s.Positions {
		positions[i] = positionDTO{
			ParticipantID:     int64(p.ParticipantID),
			Name:              p.Name,
			TotalPaid:         p.TotalPaid,
			TotalPaidDisplay:  format.Money(p.TotalPaid, base),
			TotalShare:        p.TotalShare,
			TotalShareDisplay: format.Money(p.TotalShare, base),
			RawBalance:        p.RawBalance,
			Balance:           p.Balance,
			BalanceDisplay:    format.Money(p.Balance, base),
			FinalPaid:         p.FinalPaid,
			FinalPaidDisplay:  format.Money(p.FinalPaid, base),
		}
	}

	suggestions := make([]suggestionDTO, len(s.Suggestions))
	for i, t := range s.Suggestions {
		suggestions[i] = suggestionDTO{
			From:          t.From,
			To:            t.To,
			Amount:        t.Amount,
			AmountDisplay: format.Units(t.Amount, base),
		}
	}

	return settlementDTO{
		TripID:       tripID,
		BaseCurrency: base,
		Positions:    positions,
		Suggestions:  suggestions,
	}
}

func toTransferDTO(t *domain.CompletedTransfer, base string) transferDTO {
	return transferDTO{
		ID:            t.ID,
		Payer:         t.PayerName,
		Receiver:      t.ReceiverName,
		Amount:        t.Amount,
		AmountDisplay: format.Units(t.Amount, base),
		Done:          t.Done,
		DoneAt:        t.DoneAt,
	}
}

func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	s, err := h.settlements.Compute(r.Context(), tripID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toSettlementDTO(tripID, s, h.baseCurrency))
}

func (h *SettlementHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req confirmTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	t, err := h.settlements.ConfirmTransfer(r.Context(), tripID, service.ConfirmTransferInput{
		PayerName:    req.Payer,
		ReceiverName: req.Receiver,
		RawAmount:    req.rawAmount(),
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to confirm transfer", "error", err, "trip_id", tripID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransferDTO(t, h.baseCurrency))
}

func (h *SettlementHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	transfers, err := h.settlements.ListTransfers(r.Context(), tripID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transferDTO, len(transfers))
	for i := range transfers {
		dtos[i] = toTransferDTO(&transfers[i], h.baseCurrency)
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
