package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tributo/internal/service"
)

// maxPayrollBody bounds reconciliation request bodies.
const maxPayrollBody = 1 << 20

// PayrollHandler handles payslip reconciliation.
type PayrollHandler struct {
	payrollService service.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payrollService service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// Reconcile handles POST /api/v1/payroll/reconcile
// @Summary Reconcile payslip totals against line items
// @Tags payroll
// @Accept json
// @Produce json
// @Param body body ReconcileRequest true "Line items and stored totals"
// @Success 200 {object} Response{data=domain.ReconciliationResult}
// @Failure 400 {object} ErrorResponseBody "Invalid payroll input"
// @Router /payroll/reconcile [post]
func (h *PayrollHandler) Reconcile(c *gin.Context) {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body is required")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayrollBody))
	if err != nil {
		RespondError(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large")
		return
	}

	result, err := h.payrollService.Reconcile(body)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
