package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/extraction"
	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/models"
	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/report"
)

// maxReportResults bounds report queries; reports are approximate summaries
// for very active periods, not exhaustive ledgers.
const maxReportResults = 20

// Repository persists and queries expense records.
type Repository interface {
	CreateExpense(ctx context.Context, exp *models.Expense) error
	ExpensesInRange(ctx context.Context, userID int64, start, end string, limit int64) ([]models.Expense, error)
}

// Extractor turns prompt parts into a structured extraction result.
type Extractor interface {
	Extract(ctx context.Context, parts []extraction.Part) (*extraction.Result, error)
}

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	SendMessage(chatID int64, text string)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// WebhookHandler wires classifier, fetcher, extraction engine, repository and
// aggregator together per incoming webhook event. Every path terminates in at
// most one outbound chat message and an acknowledgment to the transport.
type WebhookHandler struct {
	repo      Repository
	extractor Extractor
	tg        Messenger
	log       zerolog.Logger
	now       func() time.Time
}

// NewWebhookHandler creates the webhook handler.
func NewWebhookHandler(repo Repository, extractor Extractor, tg Messenger, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		repo:      repo,
		extractor: extractor,
		tg:        tg,
		log:       log,
		now:       time.Now,
	}
}

// Router builds the HTTP surface: a health check and the webhook endpoint.
func (h *WebhookHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/", h.Webhook).Methods(http.MethodPost)
	return r
}

type webhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health confirms liveness for the platform's health check.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "Service is running",
		"message": "Listening for POST requests from Telegram...",
	})
}

// Webhook is the transport-facing adapter. It always answers HTTP 200: the
// webhook contract penalizes non-acknowledgment with retries that would
// duplicate persisted records and chat messages. Any fault the inner handler
// did not convert into a user message is logged and folded into the ack.
func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Interface("panic", rec).Msg("panic while handling update")
			writeJSON(w, webhookResponse{Status: "error", Message: fmt.Sprintf("panic: %v", rec)})
		}
	}()

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Error().Err(err).Msg("malformed webhook payload")
		writeJSON(w, webhookResponse{Status: "error", Message: err.Error()})
		return
	}

	// Only message updates carry expenses; everything else is a silent no-op.
	if update.Message == nil {
		writeJSON(w, webhookResponse{Status: "ok"})
		return
	}

	if err := h.processMessage(r.Context(), update.Message); err != nil {
		h.log.Error().Err(err).Int("update_id", update.UpdateID).Msg("unhandled error processing update")
		writeJSON(w, webhookResponse{Status: "error", Message: fmt.Sprintf("%T: %v", err, err)})
		return
	}

	writeJSON(w, webhookResponse{Status: "ok"})
}

// processMessage runs one message through classify -> command or extract ->
// persist -> respond. Expected failures (oversized input, download, extraction
// and persistence errors) are converted into chat messages here and never
// propagate; only unexpected faults return an error.
func (h *WebhookHandler) processMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil || msg.From == nil {
		return fmt.Errorf("message without chat or sender")
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID

	input, rejection := Classify(msg)
	if rejection != nil {
		h.tg.SendMessage(chatID, rejection.Msg)
		return nil
	}

	switch input.Kind {
	case InputCommand:
		if input.Command == "start" {
			h.tg.SendMessage(chatID, msgWelcome)
			return nil
		}
		h.Report(ctx, chatID, userID, input.Command)

	case InputAttachment:
		data, err := h.tg.DownloadFile(ctx, input.FileID)
		if err != nil {
			h.log.Error().Err(err).Int64("user_id", userID).Msg("attachment download failed")
			h.tg.SendMessage(chatID, msgDownloadError)
			return nil
		}
		prompt := input.Caption
		if prompt == "" {
			prompt = extraction.DefaultPrompt
		}
		parts := []extraction.Part{
			extraction.ImagePart(data, "image/jpeg"),
			extraction.TextPart(prompt),
		}
		h.extractAndSave(ctx, chatID, userID, parts)

	case InputText:
		h.extractAndSave(ctx, chatID, userID, []extraction.Part{extraction.TextPart(input.Text)})
	}

	return nil
}

// extractAndSave runs the extract path: call the model, defend against its
// best-effort output, persist and confirm.
func (h *WebhookHandler) extractAndSave(ctx context.Context, chatID, userID int64, parts []extraction.Part) {
	result, err := h.extractor.Extract(ctx, parts)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("extraction failed")
		h.tg.SendMessage(chatID, fmt.Sprintf(msgExtractionFailed, "Failed to process input."))
		return
	}

	if result.Failed() {
		h.tg.SendMessage(chatID, fmt.Sprintf(msgExtractionFailed, result.Description))
		return
	}

	// The amount arrives as a decimal string; a malformed or negative value
	// is treated the same as a failed extraction.
	amount, err := decimal.NewFromString(strings.TrimSpace(result.Amount))
	if err != nil || amount.IsNegative() {
		h.log.Warn().Str("amount", result.Amount).Int64("user_id", userID).Msg("invalid extracted amount")
		h.tg.SendMessage(chatID, fmt.Sprintf(msgExtractionFailed, "Could not read a valid amount."))
		return
	}

	exp := &models.Expense{
		UserID:      userID,
		Category:    models.NormalizeCategory(result.Category),
		Description: result.Description,
		Amount:      amount.InexactFloat64(),
		CreatedAt:   h.now().UTC().Format(models.TimeLayout),
	}

	if err := h.repo.CreateExpense(ctx, exp); err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("failed to persist expense")
		h.tg.SendMessage(chatID, msgSaveError)
		return
	}

	h.log.Info().Int64("user_id", userID).Str("category", exp.Category).
		Float64("amount", exp.Amount).Msg("expense saved")
	h.tg.SendMessage(chatID, fmt.Sprintf(msgExpenseSaved,
		exp.Category, amount.StringFixed(2), exp.Description))
}

// Report fetches and summarizes the user's expenses for a report selector.
// Also driven by the optional scheduled push.
func (h *WebhookHandler) Report(ctx context.Context, chatID, userID int64, selector string) {
	window := report.Resolve(selector, h.now())
	label := report.PeriodLabel(selector)

	expenses, err := h.repo.ExpensesInRange(ctx, userID, window.StartISO(), window.EndISO(), maxReportResults)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Str("selector", selector).Msg("report query failed")
		h.tg.SendMessage(chatID, msgReportError)
		return
	}

	if len(expenses) == 0 {
		h.tg.SendMessage(chatID, fmt.Sprintf(msgNoExpenses, label))
		return
	}

	h.tg.SendMessage(chatID, report.Format(label, report.Summarize(expenses)))
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
