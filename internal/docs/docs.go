// Package docs holds the swagger document served under /swagger. Keep it in
// step with the handler annotations; `swag init -g cmd/api/main.go -o internal/docs`
// regenerates it.
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
        "/category": {
            "get": {
                "description": "Known (category, subcategory) pairs as category -> [subcategory]",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Category catalog",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "array", "items": {"type": "string"}}
                        }
                    },
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/category-summary/": {
            "get": {
                "description": "Totals grouped as category -> subcategory -> total, plus the grand total",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Category summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.CategorySummary"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/excel-export/": {
            "get": {
                "description": "One sheet per non-empty table with auto-sized columns",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["export"],
                "summary": "Export workbook",
                "responses": {
                    "200": {"description": "budget_data_export.xlsx", "schema": {"type": "file"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/excel-import/": {
            "post": {
                "description": "Replace categories and transactions with the workbook's contents in one transaction",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Import workbook",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Workbook with Category and Transaction sheets",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportResponse"}},
                    "400": {"description": "Invalid file or content", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transaction-add": {
            "post": {
                "description": "Validate against the category catalog and store a transaction stamped with the server time",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Add a transaction",
                "parameters": [
                    {
                        "description": "Transaction details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.AddTransactionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Transaction created", "schema": {"$ref": "#/definitions/handlers.AddTransactionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/": {
            "get": {
                "description": "Paginated transaction log. Out-of-range pages are clamped.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Items per page", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionListResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/typst-json/": {
            "get": {
                "description": "Indented category -> subcategory -> total map without an envelope",
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Summary export",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "object", "additionalProperties": {"type": "number"}}
                        }
                    },
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AddTransactionRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "12.50"},
                "category": {"type": "string", "example": "Food"},
                "subcategory": {"type": "string", "example": "Groceries"}
            }
        },
        "handlers.AddTransactionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "transaction": {"$ref": "#/definitions/handlers.TransactionResponse"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VALIDATION_ERROR"},
                "error": {"type": "string", "example": "amount must be positive"},
                "msg": {"type": "string", "example": "amount must be positive"},
                "status": {"type": "string", "example": "error"}
            }
        },
        "handlers.ImportResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string", "example": "Import successful"},
                "results": {"type": "object", "additionalProperties": {"$ref": "#/definitions/services.EntityResult"}},
                "row_counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "sheets_imported": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "handlers.TransactionListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "current_page": {"type": "integer"},
                "has_next": {"type": "boolean"},
                "has_previous": {"type": "boolean"},
                "num_pages": {"type": "integer"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/handlers.TransactionResponse"}}
            }
        },
        "handlers.TransactionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "12.50"},
                "category": {"type": "string"},
                "datetime": {"type": "string", "example": "2024-05-10T14:30:00.123456"},
                "id": {"type": "integer"},
                "subcategory": {"type": "string"}
            }
        },
        "services.CategorySummary": {
            "type": "object",
            "properties": {
                "categories": {
                    "type": "object",
                    "additionalProperties": {"type": "object", "additionalProperties": {"type": "number"}}
                },
                "grand_total": {"type": "number"}
            }
        },
        "services.EntityResult": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "deleted": {"type": "integer"},
                "total": {"type": "integer"},
                "unchanged": {"type": "integer"},
                "updated": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Budget API",
	Description:      "Personal bookkeeping: category totals, a transaction log, and spreadsheet import/export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
