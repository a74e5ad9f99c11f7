// Package api contains the swagger documentation of the API.
//
// Regenerate with swag init after changing the annotations of the handlers.
package api

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
        "/healthz": {
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "produces": ["application/json"],
                "tags": ["General"],
                "summary": "Get health",
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": ["General"],
                "summary": "Allowed HTTP verbs",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1": {
            "get": {
                "description": "Returns general information about the v1 API",
                "tags": ["v1"],
                "summary": "v1 API",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.V1Response"}}}
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": ["v1"],
                "summary": "Allowed HTTP verbs",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/shares": {
            "get": {
                "description": "Returns all shares, the most recent first",
                "produces": ["application/json"],
                "tags": ["Shares"],
                "summary": "Get shares",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.ShareListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/v1.ShareListResponse"}}
                }
            },
            "post": {
                "description": "Splits the amount between the people and creates a PromptPay QR code for the amount per person",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Shares"],
                "summary": "Create share",
                "parameters": [
                    {"type": "string", "description": "Date of the expense in YYYY-MM-DD format. Defaults to today", "name": "date", "in": "formData"},
                    {"type": "string", "description": "What the expense was for", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Phone number, tax ID or e-wallet ID receiving the payments", "name": "promptpay", "in": "formData", "required": true},
                    {"type": "integer", "description": "Number of people to split the amount between", "name": "people", "in": "formData", "required": true},
                    {"type": "string", "description": "Total amount in THB", "name": "amount", "in": "formData", "required": true},
                    {"type": "file", "description": "Receipt or other evidence of the expense", "name": "evidence", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/v1.ShareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/v1.ShareResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/v1.ShareResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/v1.ShareResponse"}}
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": ["Shares"],
                "summary": "Allowed HTTP verbs",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/shares/{id}": {
            "get": {
                "description": "Returns a specific share",
                "produces": ["application/json"],
                "tags": ["Shares"],
                "summary": "Get share",
                "parameters": [{"type": "integer", "description": "ID of the share", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.ShareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/v1.ShareResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/v1.ShareResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/v1.ShareResponse"}}
                }
            },
            "delete": {
                "description": "Deletes a share together with its evidence and QR code. Deleting a share that does not exist succeeds.",
                "tags": ["Shares"],
                "summary": "Delete share",
                "parameters": [{"type": "integer", "description": "ID of the share", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httputil.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": ["Shares"],
                "summary": "Allowed HTTP verbs",
                "parameters": [{"type": "integer", "description": "ID of the share", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httputil.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httputil.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": ["General"],
                "summary": "API version",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.VersionResponse"}}}
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": ["General"],
                "summary": "Allowed HTTP verbs",
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "httputil.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "there is no share matching your query"}
            }
        },
        "router.V1Response": {
            "type": "object",
            "properties": {
                "links": {"description": "Links for the v1 API", "allOf": [{"$ref": "#/definitions/router.V1Links"}]}
            }
        },
        "router.V1Links": {
            "type": "object",
            "properties": {
                "shares": {"description": "URL of share list endpoint", "type": "string", "example": "https://example.com/api/v1/shares"}
            }
        },
        "router.VersionObject": {
            "type": "object",
            "properties": {
                "version": {"description": "the running version of the backend", "type": "string", "example": "1.1.0"}
            }
        },
        "router.VersionResponse": {
            "type": "object",
            "properties": {
                "data": {"description": "Data object for the version endpoint", "allOf": [{"$ref": "#/definitions/router.VersionObject"}]}
            }
        },
        "v1.Share": {
            "type": "object",
            "properties": {
                "amount": {"description": "Total amount in THB", "type": "string", "example": "100"},
                "createdAt": {"type": "string", "example": "2025-03-14T09:26:53Z"},
                "date": {"description": "Date of the expense", "type": "string", "example": "2025-03-14"},
                "evidence": {"description": "Name of the evidence file, null if there is none", "type": "string", "example": "20250314092653_receipt.jpg"},
                "id": {"type": "integer", "example": 42},
                "links": {"$ref": "#/definitions/v1.ShareLinks"},
                "people": {"description": "Number of people the amount is split between", "type": "integer", "example": 3},
                "perPerson": {"description": "Amount each person pays", "type": "string", "example": "33.33"},
                "promptpay": {"description": "Phone number, tax ID or e-wallet ID receiving the payments", "type": "string", "example": "0801234567"},
                "qrCode": {"description": "Name of the QR code image", "type": "string", "example": "qr_42.png"},
                "title": {"description": "What the expense was for", "type": "string", "example": "Dinner at Jay Fai"}
            }
        },
        "v1.ShareLinks": {
            "type": "object",
            "properties": {
                "evidence": {"description": "The evidence file, empty if there is none", "type": "string", "example": "https://example.com/api/uploads/20250314092653_receipt.jpg"},
                "qrCode": {"description": "The QR code image", "type": "string", "example": "https://example.com/api/qrcodes/qr_42.png"},
                "self": {"description": "The share itself", "type": "string", "example": "https://example.com/api/v1/shares/42"}
            }
        },
        "v1.ShareListResponse": {
            "type": "object",
            "properties": {
                "data": {"description": "List of shares", "type": "array", "items": {"$ref": "#/definitions/v1.Share"}},
                "error": {"description": "The error, if any occurred", "type": "string", "example": "an error occurred on the server during your request"}
            }
        },
        "v1.ShareResponse": {
            "type": "object",
            "properties": {
                "data": {"description": "Data for the share", "allOf": [{"$ref": "#/definitions/v1.Share"}]},
                "error": {"description": "The error, if any occurred", "type": "string", "example": "there is no share matching your query"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
