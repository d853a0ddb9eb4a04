package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/model"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
)

// AdminFinanceHandler covers the money side of the back office: manual
// ledger entries (supplies, rent, extra income) and the monthly summary.
// Reservation income rows are written by the booking service, never through
// these endpoints.
type AdminFinanceHandler struct {
	Finance   *repository.FinanceRepo
	Customers *repository.CustomerRepo
}

func NewAdminFinanceHandler(finance *repository.FinanceRepo, customers *repository.CustomerRepo) *AdminFinanceHandler {
	return &AdminFinanceHandler{Finance: finance, Customers: customers}
}

type entryReq struct {
	Type          string `json:"type"` // INCOME | EXPENSE
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Description   string `json:"description"`
	AmountCents   int64  `json:"amount_cents"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`   // RECEIVED | PENDING
	DueDate       string `json:"due_date"` // YYYY-MM-DD, required when PENDING
}

// CreateEntry handles POST /v1/admin/finance/entries.
func (h *AdminFinanceHandler) CreateEntry(c echo.Context) error {
	var req entryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if req.Type != model.EntryIncome && req.Type != model.EntryExpense {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be INCOME or EXPENSE"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}
	if strings.TrimSpace(req.Category) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category required"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.EntryReceived
	}
	if status != model.EntryReceived && status != model.EntryPending {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be RECEIVED or PENDING"})
	}

	entry := model.FinancialEntry{
		Type:          req.Type,
		Category:      strings.TrimSpace(req.Category),
		Subcategory:   strings.TrimSpace(req.Subcategory),
		Description:   strings.TrimSpace(req.Description),
		AmountCents:   req.AmountCents,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Status:        status,
	}
	switch status {
	case model.EntryPending:
		if req.DueDate == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date required for pending entries"})
		}
		due, err := time.Parse(quote.DateLayout, req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
		}
		entry.DueDate = &due
	case model.EntryReceived:
		now := time.Now().UTC()
		entry.PaidAt = &now
	}

	if err := h.Finance.Insert(c.Request().Context(), &entry); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save entry"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": entry.ID})
}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthlySummary handles GET /v1/admin/finance/summary?month=YYYY-MM.
// Defaults to the current month.
func (h *AdminFinanceHandler) MonthlySummary(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if !monthRe.MatchString(month) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
	}
	s, err := h.Finance.MonthlySummary(c.Request().Context(), month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load summary"})
	}
	return c.JSON(http.StatusOK, s)
}

// GetCustomer handles GET /v1/admin/customers/:phone: directory row with
// lifetime spend.
func (h *AdminFinanceHandler) GetCustomer(c echo.Context) error {
	phone := strings.TrimSpace(c.Param("phone"))
	if phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone required"})
	}
	cust, err := h.Customers.GetByPhone(c.Request().Context(), phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load customer"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": cust})
}
