// Package docs registers the portal's OpenAPI description with swag so that
// echo-swagger can serve it under /swagger/*. Regenerate with `swag init -g
// cmd/portal/main.go` after changing handler annotations.
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
        "/": {"get": {"tags": ["session"], "summary": "Welcome page", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/login": {
            "get": {"tags": ["session"], "summary": "Login page", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["session"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}}
        },
        "/register": {
            "get": {"tags": ["session"], "summary": "Registration page", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["session"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Registration"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}}
        },
        "/logout": {"post": {"tags": ["session"], "summary": "Logout", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/session": {"get": {"tags": ["session"], "summary": "Current session", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SessionState"}}}}},
        "/forbidden": {"get": {"tags": ["session"], "summary": "Forbidden", "responses": {"403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}}},
        "/user": {"get": {"tags": ["user"], "summary": "User dashboard", "produces": ["application/json"],
            "parameters": [{"type": "string", "in": "query", "name": "field"}, {"type": "string", "in": "query", "name": "q"}],
            "responses": {"200": {"description": "OK"}}}},
        "/user/profile": {
            "get": {"tags": ["user"], "summary": "User profile", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Profile"}}}},
            "put": {"tags": ["user"], "summary": "Update profile", "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProfileUpdate"}}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/user/borrowed": {"get": {"tags": ["user"], "summary": "Borrowed books", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/user/borrow/{bookId}": {"post": {"tags": ["user"], "summary": "Borrow a book", "parameters": [{"type": "string", "in": "path", "name": "bookId", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/user/return/{id}": {"post": {"tags": ["user"], "summary": "Return a book", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/admin": {"get": {"tags": ["admin"], "summary": "Admin dashboard", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/admin/user/{userId}": {"get": {"tags": ["admin"], "summary": "User detail", "parameters": [{"type": "string", "in": "path", "name": "userId", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users/{id}": {"delete": {"tags": ["admin"], "summary": "Delete user", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/admin/book": {"post": {"tags": ["admin"], "summary": "Add book", "consumes": ["application/json"],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.NewBook"}}],
            "responses": {"201": {"description": "Created"}}}},
        "/admin/book/{id}": {"delete": {"tags": ["admin"], "summary": "Delete book", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/admin/book/stock/{id}": {"put": {"tags": ["admin"], "summary": "Change stock",
            "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "integer", "in": "query", "name": "stockChange", "required": true}],
            "responses": {"204": {"description": "No Content"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "definitions": {
        "domain.LoginRequest": {"type": "object", "required": ["password", "username"], "properties": {"password": {"type": "string"}, "username": {"type": "string"}}},
        "domain.Registration": {"type": "object", "required": ["firstname", "lastname", "password", "username"], "properties": {"firstname": {"type": "string"}, "lastname": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["USER", "ADMIN"]}, "username": {"type": "string"}}},
        "domain.SessionState": {"type": "object", "properties": {"isAuthenticated": {"type": "boolean"}, "role": {"type": "string"}}},
        "domain.Profile": {"type": "object", "properties": {"id": {"type": "string"}, "firstname": {"type": "string"}, "lastname": {"type": "string"}, "role": {"type": "string"}, "username": {"type": "string"}}},
        "domain.ProfileUpdate": {"type": "object", "required": ["firstname", "lastname", "username"], "properties": {"firstname": {"type": "string"}, "lastname": {"type": "string"}, "username": {"type": "string"}}},
        "domain.NewBook": {"type": "object", "required": ["author", "title"], "properties": {"author": {"type": "string"}, "description": {"type": "string"}, "genre": {"type": "string"}, "stock": {"type": "integer"}, "title": {"type": "string"}}},
        "handler.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Library Portal API",
	Description:      "Session gateway in front of the library backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
