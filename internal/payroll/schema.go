package payroll

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tributo/internal/domain"
)

//go:embed schema/reconcile_request.json
var requestSchemaJSON []byte

const requestSchemaURL = "reconcile_request.json"

var (
	requestSchemaOnce sync.Once
	requestSchema     *jsonschema.Schema
	requestSchemaErr  error
)

// Request is the body of a reconciliation call.
type Request struct {
	Items  []domain.PayrollLineItem `json:"items"`
	Stored domain.PayrollTotals     `json:"stored"`
}

func compiledRequestSchema() (*jsonschema.Schema, error) {
	requestSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(requestSchemaURL, bytes.NewReader(requestSchemaJSON)); err != nil {
			requestSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		requestSchema, requestSchemaErr = compiler.Compile(requestSchemaURL)
		if requestSchemaErr != nil {
			requestSchemaErr = fmt.Errorf("compile schema: %w", requestSchemaErr)
		}
	})
	return requestSchema, requestSchemaErr
}

// DecodeRequest validates data against the request schema and decodes it.
// Any schema or syntax problem is reported as ErrInvalidPayrollInput.
func DecodeRequest(data []byte) (*Request, error) {
	schema, err := compiledRequestSchema()
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayrollInput, err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayrollInput, err)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayrollInput, err)
	}
	return &req, nil
}
