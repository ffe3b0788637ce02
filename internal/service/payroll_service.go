package service

import (
	"github.com/rs/zerolog"

	"tributo/internal/domain"
	"tributo/internal/payroll"
)

// PayrollService defines the payslip reconciliation contract.
type PayrollService interface {
	// Reconcile validates a raw JSON request and compares its stored totals
	// against the totals computed from its line items.
	Reconcile(body []byte) (*domain.ReconciliationResult, error)
	Tolerance() string
}

type payrollService struct {
	reconciler *payroll.Reconciler
	log        zerolog.Logger
}

// NewPayrollService creates a PayrollService.
func NewPayrollService(reconciler *payroll.Reconciler, log zerolog.Logger) PayrollService {
	return &payrollService{reconciler: reconciler, log: log}
}

func (s *payrollService) Reconcile(body []byte) (*domain.ReconciliationResult, error) {
	req, err := payroll.DecodeRequest(body)
	if err != nil {
		return nil, err
	}
	res := s.reconciler.Validate(req.Items, req.Stored)
	if !res.IsValid {
		s.log.Debug().Strs("errors", res.Errors).Msg("payrollService.Reconcile: totals do not reconcile")
	}
	return res, nil
}

func (s *payrollService) Tolerance() string {
	return s.reconciler.Tolerance().String()
}
