package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/analysis"
	"github.com/arthguru/finance-coach/internal/api/middleware"
	"github.com/arthguru/finance-coach/internal/domain"
	"github.com/arthguru/finance-coach/internal/ingest"
	"github.com/arthguru/finance-coach/internal/pipeline"
	"github.com/arthguru/finance-coach/internal/planner"
	"github.com/arthguru/finance-coach/internal/session"
)

// SessionsHandler handles coaching-session endpoints.
type SessionsHandler struct {
	store *session.Store
	seed  int64
	log   zerolog.Logger
}

// NewSessionsHandler creates a new sessions handler. seed is the default
// seed for sample-ledger generation; zero means time-based.
func NewSessionsHandler(store *session.Store, seed int64, log zerolog.Logger) *SessionsHandler {
	return &SessionsHandler{
		store: store,
		seed:  seed,
		log:   log,
	}
}

// transactionPayload is the wire form of one ledger row. Amounts accept
// JSON numbers or strings.
type transactionPayload struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Category string          `json:"category"`
}

// ledgerRequest carries transaction data for session creation and
// replacement. Setting sample generates a ledger instead.
type ledgerRequest struct {
	Transactions []transactionPayload `json:"transactions"`
	Sample       bool                 `json:"sample"`
	Seed         int64                `json:"seed"`
}

// CategoryAmount is one category's expense total.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MetricsResponse is the wire form of the computed metrics.
// avg_monthly_income is null when the ledger has no income rows.
type MetricsResponse struct {
	TotalIncome       decimal.Decimal  `json:"total_income"`
	TotalExpenses     decimal.Decimal  `json:"total_expenses"`
	NetSavings        decimal.Decimal  `json:"net_savings"`
	SavingsRate       float64          `json:"savings_rate"`
	AvgMonthlyIncome  *float64         `json:"avg_monthly_income"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
}

// Recommendation is one planner finding.
type Recommendation struct {
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// PlanResponse is the wire form of the derived plan.
type PlanResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Goals           []string         `json:"goals"`
}

// MonthlyFlow is one calendar month's income and spending totals.
type MonthlyFlow struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
}

// ReportResponse carries chart-ready series for the report view.
type ReportResponse struct {
	Months     []MonthlyFlow    `json:"months"`
	Categories []CategoryAmount `json:"categories"`
}

// CreateSession handles POST /api/sessions
func (h *SessionsHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req ledgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ledger, rng, err := h.resolveLedger(req)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.store.Create(ledger, rng)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			middleware.WriteError(w, http.StatusTooManyRequests, "Session limit reached")
			return
		}
		h.log.Error().Err(err).Msg("Failed to create session")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.log.Info().
		Str("session_id", sess.ID).
		Int("transactions", len(ledger)).
		Bool("sample", req.Sample).
		Msg("Session created")

	middleware.WriteJSON(w, http.StatusCreated, h.sessionSummary(sess))
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	middleware.WriteJSON(w, http.StatusOK, h.sessionSummary(sess))
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionsHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(id); err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}

	h.log.Info().Str("session_id", id).Msg("Session deleted")
	middleware.WriteJSON(w, http.StatusNoContent, nil)
}

// StartPipeline handles POST /api/sessions/{id}/start
func (h *SessionsHandler) StartPipeline(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	if err := sess.Start(); err != nil {
		h.writeStageError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"stage": sess.Stage().String()})
}

// AdvancePipeline handles POST /api/sessions/{id}/advance
func (h *SessionsHandler) AdvancePipeline(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	if err := sess.Advance(); err != nil {
		h.writeStageError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"stage": sess.Stage().String()})
}

// ResetPipeline handles POST /api/sessions/{id}/reset
func (h *SessionsHandler) ResetPipeline(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	sess.Reset()
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"stage": sess.Stage().String()})
}

// ReplaceData handles PUT /api/sessions/{id}/data
func (h *SessionsHandler) ReplaceData(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	var req ledgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ledger, _, err := h.resolveLedger(req)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess.LoadLedger(ledger)

	h.log.Info().
		Str("session_id", sess.ID).
		Int("transactions", len(ledger)).
		Msg("Session data replaced")

	middleware.WriteJSON(w, http.StatusOK, h.sessionSummary(sess))
}

// GetMetrics handles GET /api/sessions/{id}/metrics
func (h *SessionsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	metrics, err := sess.Metrics()
	if err != nil {
		h.writeStageError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, toMetricsResponse(metrics))
}

// GetPlan handles GET /api/sessions/{id}/plan
func (h *SessionsHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	plan, err := sess.Plan()
	if err != nil {
		h.writeStageError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, toPlanResponse(plan))
}

// GetReport handles GET /api/sessions/{id}/report
func (h *SessionsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	metrics, err := sess.Metrics()
	if err != nil {
		h.writeStageError(w, err)
		return
	}

	series := analysis.MonthlySeries(sess.Ledger())
	months := make([]MonthlyFlow, 0, len(series))
	for _, flow := range series {
		months = append(months, MonthlyFlow{
			Month:    flow.Month,
			Income:   flow.Income,
			Spending: flow.Spending,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, ReportResponse{
		Months:     months,
		Categories: toCategoryAmounts(metrics.ExpenseByCategory),
	})
}

// GetQuestions handles GET /api/sessions/{id}/questions
func (h *SessionsHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	if sess.Stage() < pipeline.StageAdvisorReady {
		middleware.WriteError(w, http.StatusConflict, "Advisor not ready")
		return
	}

	questions := sess.Suggestions()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

// Chat handles POST /api/sessions/{id}/chat
func (h *SessionsHandler) Chat(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := sess.Ask(req.Message)
	if err != nil {
		h.writeStageError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reply":     reply,
		"questions": sess.Suggestions(),
	})
}

// turnPayload is the wire form of one chat turn.
type turnPayload struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// ChatHistory handles GET /api/sessions/{id}/chat
func (h *SessionsHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(w, r)
	if sess == nil {
		return
	}

	turns := sess.History()
	history := make([]turnPayload, 0, len(turns))
	for _, turn := range turns {
		history = append(history, turnPayload{
			Role:    string(turn.Role),
			Content: turn.Content,
			At:      turn.At,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// lookup resolves the session named in the URL, writing a 404 and
// returning nil when it does not exist.
func (h *SessionsHandler) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "id")

	sess, err := h.store.Get(id)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return nil
	}
	return sess
}

// resolveLedger builds the ledger a request describes. For sample
// requests it also returns the generator rng so a new session can keep
// drawing from the same seeded stream.
func (h *SessionsHandler) resolveLedger(req ledgerRequest) (domain.Ledger, *rand.Rand, error) {
	if req.Sample {
		seed := req.Seed
		if seed == 0 {
			seed = h.seed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		ledger, err := ingest.Generate(ingest.DefaultProfile(), rng)
		if err != nil {
			return nil, nil, fmt.Errorf("generate sample ledger: %w", err)
		}
		return ledger, rng, nil
	}

	ledger := make(domain.Ledger, 0, len(req.Transactions))
	for i, row := range req.Transactions {
		date, err := time.Parse(ingest.DateLayout, row.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: invalid date %q", i+1, row.Date)
		}
		ledger = append(ledger, domain.Transaction{
			Date:     date,
			Income:   row.Income,
			Spending: row.Spending,
			Category: row.Category,
		})
	}
	return ledger, nil, nil
}

// writeStageError maps pipeline and planner errors to HTTP statuses.
func (h *SessionsHandler) writeStageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrOutOfSequence):
		middleware.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, planner.ErrNoExpenseData):
		middleware.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidLedger):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("Unexpected pipeline error")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *SessionsHandler) sessionSummary(sess *session.Session) map[string]interface{} {
	return map[string]interface{}{
		"session_id":   sess.ID,
		"created_at":   sess.CreatedAt.Format(time.RFC3339),
		"stage":        sess.Stage().String(),
		"transactions": len(sess.Ledger()),
		"turns":        len(sess.History()),
	}
}

func toMetricsResponse(m domain.Metrics) MetricsResponse {
	resp := MetricsResponse{
		TotalIncome:       m.TotalIncome,
		TotalExpenses:     m.TotalExpenses,
		NetSavings:        m.NetSavings,
		SavingsRate:       m.SavingsRate,
		ExpenseByCategory: toCategoryAmounts(m.ExpenseByCategory),
	}
	if !math.IsNaN(m.AvgMonthlyIncome) {
		avg := m.AvgMonthlyIncome
		resp.AvgMonthlyIncome = &avg
	}
	return resp
}

func toPlanResponse(p domain.Plan) PlanResponse {
	resp := PlanResponse{
		Recommendations: make([]Recommendation, 0, len(p.Recommendations)),
		Goals:           append([]string{}, p.Goals...),
	}
	for _, rec := range p.Recommendations {
		resp.Recommendations = append(resp.Recommendations, Recommendation{
			Severity: string(rec.Severity),
			Title:    rec.Title,
			Message:  rec.Message,
		})
	}
	return resp
}

func toCategoryAmounts(categories []domain.CategoryAmount) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryAmount{Category: c.Category, Amount: c.Amount})
	}
	return out
}
