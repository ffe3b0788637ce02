// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/f29/catalogue": {
            "get": {
                "tags": [
                    "f29"
                ],
                "summary": "List recognized form codes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/handler.CatalogueEntry"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/f29/parse": {
            "post": {
                "tags": [
                    "f29"
                ],
                "summary": "Parse a Formulario 29 declaration",
                "description": "Accepts a multipart \"file\" field or a raw application/pdf body. The response body is the parse outcome, not the standard envelope.",
                "consumes": [
                    "multipart/form-data",
                    "application/pdf"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "Declaration PDF",
                        "name": "file",
                        "in": "formData"
                    },
                    {
                        "type": "boolean",
                        "description": "Archive the declaration when parsing succeeds",
                        "name": "persist",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Parsed declaration",
                        "schema": {
                            "$ref": "#/definitions/handler.ParseOutcomeDoc"
                        }
                    },
                    "413": {
                        "description": "PayloadTooLarge",
                        "schema": {
                            "$ref": "#/definitions/handler.ParseOutcomeDoc"
                        }
                    },
                    "415": {
                        "description": "InvalidMediaType",
                        "schema": {
                            "$ref": "#/definitions/handler.ParseOutcomeDoc"
                        }
                    },
                    "422": {
                        "description": "ExtractionFailed or NoCodesRecognized",
                        "schema": {
                            "$ref": "#/definitions/handler.ParseOutcomeDoc"
                        }
                    }
                }
            }
        },
        "/f29/declarations": {
            "get": {
                "tags": [
                    "f29"
                ],
                "summary": "List archived declarations",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by taxpayer RUT",
                        "name": "rut",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "description": "Offset for pagination",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 20,
                        "description": "Limit for pagination (max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/domain.Declaration"
                                            }
                                        },
                                        "meta": {
                                            "$ref": "#/definitions/handler.PagMeta"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/f29/declarations/export.csv": {
            "get": {
                "tags": [
                    "f29"
                ],
                "summary": "Export archived declarations as CSV",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by taxpayer RUT",
                        "name": "rut",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/f29/declarations/{id}": {
            "get": {
                "tags": [
                    "f29"
                ],
                "summary": "Get an archived declaration",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Declaration ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/domain.Declaration"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "404": {
                        "description": "Declaration not found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "f29"
                ],
                "summary": "Delete an archived declaration",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Declaration ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/handler.MessageResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Declaration not found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/f29/declarations/{id}/download": {
            "get": {
                "tags": [
                    "f29"
                ],
                "summary": "Get a presigned URL for the archived PDF",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Declaration ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/handler.DownloadURLResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Declaration not found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/f29/declarations/{id}/export.xlsx": {
            "get": {
                "tags": [
                    "f29"
                ],
                "summary": "Export one archived declaration as an XLSX workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Declaration ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Declaration not found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/payroll/reconcile": {
            "post": {
                "tags": [
                    "payroll"
                ],
                "summary": "Reconcile payslip totals against line items",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Line items and stored totals",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.ReconcileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/domain.ReconciliationResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid payroll input",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/f29/declarations/{id}/reparse": {
            "post": {
                "tags": [
                    "f29"
                ],
                "summary": "Parse an archived declaration again",
                "description": "Runs the current pipeline over the archived PDF. The archived snapshot is not modified.",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Declaration ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Parsed declaration",
                        "schema": {
                            "$ref": "#/definitions/handler.ParseOutcomeDoc"
                        }
                    },
                    "404": {
                        "description": "Declaration not found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "422": {
                        "description": "ExtractionFailed or NoCodesRecognized",
                        "schema": {
                            "$ref": "#/definitions/handler.ParseOutcomeDoc"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.Declaration": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "rut": {
                    "type": "string",
                    "example": "76.123.456-7"
                },
                "periodo": {
                    "type": "string",
                    "example": "202403"
                },
                "folio": {
                    "type": "string",
                    "example": "987654321"
                },
                "razon_social": {
                    "type": "string"
                },
                "codes": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "total_creditos": {
                    "type": "integer"
                },
                "compras_netas": {
                    "type": "integer"
                },
                "iva_determinado": {
                    "type": "integer"
                },
                "total_a_pagar": {
                    "type": "integer"
                },
                "margen_bruto": {
                    "type": "integer"
                },
                "confidence": {
                    "type": "integer"
                },
                "method": {
                    "type": "string",
                    "example": "pdf-text"
                },
                "original_name": {
                    "type": "string"
                },
                "file_size": {
                    "type": "integer"
                },
                "status": {
                    "type": "string",
                    "example": "active"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "domain.ReconciliationResult": {
            "type": "object",
            "properties": {
                "is_valid": {
                    "type": "boolean"
                },
                "computed": {
                    "$ref": "#/definitions/handler.ReconcileTotalsIn"
                },
                "differences": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "example": "NOT_FOUND"
                },
                "message": {
                    "type": "string",
                    "example": "resource not found"
                }
            }
        },
        "handler.CatalogueEntry": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "example": "538"
                },
                "label": {
                    "type": "string",
                    "example": "TOTAL DÉBITOS"
                },
                "group": {
                    "type": "string",
                    "example": "debit"
                }
            }
        },
        "handler.DownloadURLResponse": {
            "type": "object",
            "properties": {
                "download_url": {
                    "type": "string"
                }
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "error": {
                    "$ref": "#/definitions/handler.APIError"
                }
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "declaration deleted"
                }
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                }
            }
        },
        "handler.ParseDataDoc": {
            "type": "object",
            "properties": {
                "rut": {
                    "type": "string",
                    "example": "76.123.456-7"
                },
                "periodo": {
                    "type": "string",
                    "example": "202403"
                },
                "folio": {
                    "type": "string",
                    "example": "987654321"
                },
                "razonSocial": {
                    "type": "string",
                    "example": "COMERCIAL ANDES LIMITADA"
                },
                "codigo538": {
                    "type": "integer",
                    "example": 1000000
                },
                "totalCreditos": {
                    "type": "integer",
                    "example": 420000
                },
                "comprasNetas": {
                    "type": "integer",
                    "example": 2105263
                },
                "ivaDeterminado": {
                    "type": "integer",
                    "example": 600000
                },
                "totalAPagar": {
                    "type": "integer",
                    "example": 645000
                },
                "margenBruto": {
                    "type": "integer",
                    "example": 3157894
                },
                "confidence": {
                    "type": "integer",
                    "example": 100
                },
                "method": {
                    "type": "string",
                    "example": "pdf-text"
                }
            }
        },
        "handler.ParseOutcomeDoc": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "data": {
                    "$ref": "#/definitions/handler.ParseDataDoc"
                },
                "error": {
                    "type": "string",
                    "example": "NoCodesRecognized"
                }
            }
        },
        "handler.ReconcileItem": {
            "type": "object",
            "properties": {
                "concept": {
                    "type": "string",
                    "example": "Sueldo base"
                },
                "kind": {
                    "type": "string",
                    "example": "taxable_earning"
                },
                "amount": {
                    "type": "string",
                    "example": "850000"
                }
            }
        },
        "handler.ReconcileRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.ReconcileItem"
                    }
                },
                "stored": {
                    "$ref": "#/definitions/handler.ReconcileTotalsIn"
                }
            }
        },
        "handler.ReconcileTotalsIn": {
            "type": "object",
            "properties": {
                "gross": {
                    "type": "string",
                    "example": "850000"
                },
                "deductions": {
                    "type": "string",
                    "example": "89250"
                },
                "net": {
                    "type": "string",
                    "example": "760750"
                }
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "data": {},
                "meta": {
                    "$ref": "#/definitions/handler.PagMeta"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Tributo API",
	Description:      "Formulario 29 parsing, declaration archive and payroll reconciliation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
