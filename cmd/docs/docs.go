// Package docs holds the OpenAPI description served under /swagger.
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
        "/sessions": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Start a drafting session",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "tags": [
                    "sessions"
                ],
                "summary": "Get the session invoice",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "sessions"
                ],
                "summary": "Discard a session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/summary": {
            "get": {
                "tags": [
                    "sessions"
                ],
                "summary": "Get display strings for the invoice",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceSummaryResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/sender": {
            "patch": {
                "tags": [
                    "sessions"
                ],
                "summary": "Merge fields into the sender",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to overwrite",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.PartyPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/receiver": {
            "patch": {
                "tags": [
                    "sessions"
                ],
                "summary": "Merge fields into the receiver",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to overwrite",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.PartyPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/details": {
            "patch": {
                "tags": [
                    "sessions"
                ],
                "summary": "Merge fields into the invoice details",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to overwrite",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.DetailsPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/language": {
            "put": {
                "tags": [
                    "sessions"
                ],
                "summary": "Switch the invoice language",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Language tag",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SetLanguageRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/items": {
            "put": {
                "tags": [
                    "items"
                ],
                "summary": "Replace the line items",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New item list",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SetItemsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "items"
                ],
                "summary": "Append a blank line item",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/items/{itemID}": {
            "delete": {
                "tags": [
                    "items"
                ],
                "summary": "Remove a line item",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Item ID",
                        "name": "itemID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/items/move": {
            "post": {
                "tags": [
                    "items"
                ],
                "summary": "Reorder a line item",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Source and target index",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MoveItemRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/invoice-number/increment": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Step the invoice number up",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/invoice-number/decrement": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Step the invoice number down, never below 1",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/reset": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Reset to a default invoice",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Session not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/export": {
            "get": {
                "tags": [
                    "exchange"
                ],
                "summary": "Download the invoice file",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "invoice.json",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/export.xlsx": {
            "get": {
                "tags": [
                    "exchange"
                ],
                "summary": "Download the invoice as a spreadsheet",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "invoice.xlsx",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/import": {
            "post": {
                "tags": [
                    "exchange"
                ],
                "summary": "Load an invoice file into the session",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Invoice file contents",
                        "name": "file",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoadResponse"
                        }
                    },
                    "413": {
                        "description": "File too large",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "422": {
                        "description": "File rejected",
                        "schema": {
                            "$ref": "#/definitions/dto.LoadResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/validate": {
            "post": {
                "tags": [
                    "exchange"
                ],
                "summary": "Check that the invoice can be exported",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ValidationResponse"
                        }
                    },
                    "422": {
                        "description": "Invoice is incomplete",
                        "schema": {
                            "$ref": "#/definitions/dto.ValidationResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/drafts": {
            "post": {
                "tags": [
                    "drafts"
                ],
                "summary": "Save the session invoice as a draft",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Draft name",
                        "name": "body",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/dto.SaveDraftRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.DraftResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/drafts/{draftID}/load": {
            "post": {
                "tags": [
                    "drafts"
                ],
                "summary": "Load a saved draft into the session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Draft ID",
                        "name": "draftID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoadResponse"
                        }
                    },
                    "422": {
                        "description": "Draft could not be loaded",
                        "schema": {
                            "$ref": "#/definitions/dto.LoadResponse"
                        }
                    }
                }
            }
        },
        "/drafts": {
            "get": {
                "tags": [
                    "drafts"
                ],
                "summary": "List saved drafts",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Token from the previous page",
                        "name": "pageToken",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListDraftsResponse"
                        }
                    }
                }
            }
        },
        "/drafts/{draftID}": {
            "delete": {
                "tags": [
                    "drafts"
                ],
                "summary": "Delete a saved draft",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Draft ID",
                        "name": "draftID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Draft not found",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "domain.CustomInput": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "domain.Party": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "zipCode": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "customInputs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CustomInput"
                    }
                }
            }
        },
        "domain.PartyPatch": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "zipCode": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "customInputs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CustomInput"
                    }
                }
            }
        },
        "domain.LineItem": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "quantity": {
                    "type": "number"
                },
                "unitPrice": {
                    "type": "number"
                },
                "total": {
                    "type": "number"
                }
            }
        },
        "domain.PaymentInformation": {
            "type": "object",
            "properties": {
                "bankName": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "accountNumber": {
                    "type": "string"
                }
            }
        },
        "domain.Adjustment": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "number"
                },
                "amountType": {
                    "type": "string",
                    "enum": [
                        "amount",
                        "percentage"
                    ]
                }
            }
        },
        "domain.ShippingDetails": {
            "type": "object",
            "properties": {
                "cost": {
                    "type": "number"
                },
                "costType": {
                    "type": "string",
                    "enum": [
                        "amount",
                        "percentage"
                    ]
                }
            }
        },
        "domain.Signature": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "string"
                },
                "fontFamily": {
                    "type": "string"
                }
            }
        },
        "domain.InvoiceDetails": {
            "type": "object",
            "properties": {
                "invoiceLogo": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "invoiceDate": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                },
                "paymentInformation": {
                    "$ref": "#/definitions/domain.PaymentInformation"
                },
                "discountDetails": {
                    "$ref": "#/definitions/domain.Adjustment"
                },
                "taxDetails": {
                    "$ref": "#/definitions/domain.Adjustment"
                },
                "shippingDetails": {
                    "$ref": "#/definitions/domain.ShippingDetails"
                },
                "discountEnabled": {
                    "type": "boolean"
                },
                "taxEnabled": {
                    "type": "boolean"
                },
                "shippingEnabled": {
                    "type": "boolean"
                },
                "subTotal": {
                    "type": "number"
                },
                "totalAmount": {
                    "type": "number"
                },
                "totalAmountInWords": {
                    "type": "string"
                },
                "includeTotalInWords": {
                    "type": "boolean"
                },
                "additionalNotes": {
                    "type": "string"
                },
                "paymentTerms": {
                    "type": "string"
                },
                "signature": {
                    "$ref": "#/definitions/domain.Signature"
                }
            }
        },
        "domain.DetailsPatch": {
            "type": "object",
            "properties": {
                "invoiceLogo": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "invoiceDate": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                },
                "paymentInformation": {
                    "$ref": "#/definitions/domain.PaymentInformation"
                },
                "discountDetails": {
                    "$ref": "#/definitions/domain.Adjustment"
                },
                "taxDetails": {
                    "$ref": "#/definitions/domain.Adjustment"
                },
                "shippingDetails": {
                    "$ref": "#/definitions/domain.ShippingDetails"
                },
                "discountEnabled": {
                    "type": "boolean"
                },
                "taxEnabled": {
                    "type": "boolean"
                },
                "shippingEnabled": {
                    "type": "boolean"
                },
                "includeTotalInWords": {
                    "type": "boolean"
                },
                "additionalNotes": {
                    "type": "string"
                },
                "paymentTerms": {
                    "type": "string"
                },
                "signature": {
                    "$ref": "#/definitions/domain.Signature"
                },
                "clearSignature": {
                    "type": "boolean"
                }
            }
        },
        "domain.Invoice": {
            "type": "object",
            "properties": {
                "language": {
                    "type": "string",
                    "enum": [
                        "en",
                        "pt-BR"
                    ]
                },
                "sender": {
                    "$ref": "#/definitions/domain.Party"
                },
                "receiver": {
                    "$ref": "#/definitions/domain.Party"
                },
                "details": {
                    "$ref": "#/definitions/domain.InvoiceDetails"
                }
            }
        },
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "path": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "sessionID": {
                    "type": "string"
                },
                "invoice": {
                    "$ref": "#/definitions/domain.Invoice"
                }
            }
        },
        "dto.SetItemsRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                }
            }
        },
        "dto.MoveItemRequest": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "integer"
                },
                "to": {
                    "type": "integer"
                }
            }
        },
        "dto.SetLanguageRequest": {
            "type": "object",
            "properties": {
                "language": {
                    "type": "string",
                    "enum": [
                        "en",
                        "pt-BR"
                    ]
                }
            }
        },
        "dto.SaveDraftRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            }
        },
        "dto.LoadResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.ValidationResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.FieldError"
                    }
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.DraftResponse": {
            "type": "object",
            "properties": {
                "draftID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "totalAmount": {
                    "type": "number"
                },
                "createdAt": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                }
            }
        },
        "dto.ListDraftsResponse": {
            "type": "object",
            "properties": {
                "drafts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.DraftResponse"
                    }
                },
                "nextPageToken": {
                    "type": "string"
                }
            }
        },
        "dto.SummaryLine": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "dto.InvoiceSummaryResponse": {
            "type": "object",
            "properties": {
                "language": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "invoiceDate": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SummaryLine"
                    }
                },
                "total": {
                    "$ref": "#/definitions/dto.SummaryLine"
                },
                "totalInWords": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Invoice Drafter API",
	Description:      "Drafting sessions for invoices: edit, validate, import and export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
