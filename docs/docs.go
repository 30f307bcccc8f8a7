// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@restaurant-directory.local"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/restaurants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["restaurants"],
                "summary": "List restaurants, optionally filtered by name and open-at time",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive name fragment", "name": "name", "in": "query"},
                    {"type": "string", "description": "Weekday name or abbreviation", "name": "day", "in": "query"},
                    {"type": "string", "description": "24-hour HH:MM", "name": "time", "in": "query"},
                    {"type": "integer", "name": "page_number", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/restaurants/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["restaurants"],
                "summary": "Get a restaurant",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/restaurants/slug/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["restaurants"],
                "summary": "Get a restaurant by slug",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/restaurants/{id}/opening-hours": {
            "get": {
                "produces": ["application/json"],
                "tags": ["restaurants"],
                "summary": "Raw and parsed opening hours",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/restaurants/{id}/check-open": {
            "get": {
                "produces": ["application/json"],
                "tags": ["restaurants"],
                "summary": "Check whether a restaurant is open at a day and time",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "day", "in": "query", "required": true},
                    {"type": "string", "name": "time", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/private/restaurants": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a restaurant",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/private/restaurants/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Update a restaurant",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a restaurant",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/private/restaurants/unparseable": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Restaurants whose hours produce no schedule",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/private/restaurants/export": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Export the directory to object storage",
                "parameters": [{"type": "boolean", "name": "async", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/private/cache/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["cache"],
                "summary": "Redis cache statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/private/cache/warm-up": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cache"],
                "summary": "Load all restaurants into the cache",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/private/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["cache"],
                "summary": "Clear restaurant cache entries",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a user account", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in with email and password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}
        },
        "/auth/refresh": {
            "post": {"tags": ["auth"], "summary": "Exchange a refresh token for a new token pair", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Revoke the current access token", "responses": {"200": {"description": "OK"}}}
        },
        "/private/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token. Example: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:7070",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Restaurant Directory API",
	Description:      "Restaurant directory with opening-hours search",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
