// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/api/convert": {
            "get": {
                "description": "Convert an amount between two currencies of the current table",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Convert amount",
                "parameters": [
                    {"type": "string", "description": "Amount", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "description": "Source currency", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "Target currency", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "post": {
                "description": "Convert an amount between two currencies of the current table",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Convert amount",
                "parameters": [
                    {"description": "Conversion", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rates.ConvertRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/currencies": {
            "get": {
                "description": "Get display metadata for every offered currency",
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "List currencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/currencies/{code}": {
            "get": {
                "description": "Get display metadata for one currency",
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "Get currency by code",
                "parameters": [
                    {"type": "string", "description": "Currency code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/rates": {
            "get": {
                "description": "Get the current rate table",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Current rates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/rates/refresh": {
            "post": {
                "description": "Fetch the rates again, optionally for another base",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Refresh rates",
                "parameters": [
                    {"type": "string", "description": "Base currency", "name": "base", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "errors": {},
                "instance": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "rates.ConvertRequest": {
            "type": "object",
            "required": ["from", "to"],
            "properties": {
                "amount": {"type": "string"},
                "from": {"type": "string", "maxLength": 5, "minLength": 3},
                "to": {"type": "string", "maxLength": 5, "minLength": 3}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "fxconvert API",
	Description:      "Currency conversion over exchangerate-api and CoinGecko rates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
