// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/metrics": {
            "get": {"tags": ["system"], "summary": "Prometheus metrics", "produces": ["text/plain"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sign-up": {
            "post": {"tags": ["auth"], "summary": "Register an operator", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "id"}, "400": {"description": "Bad Request"}}}
        },
        "/auth/sign-in": {
            "post": {"tags": ["auth"], "summary": "Sign in", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "token"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/ws": {
            "get": {"tags": ["dashboard"], "summary": "Dashboard stream",
                "description": "Sends a state snapshot on connect and after every tick, feed and dismissal. A keepalive message goes out when nothing changed for interval.",
                "parameters": [
                    {"in": "query", "name": "interval", "type": "string", "description": "keepalive period as a duration, at most 1m (default 10s)"},
                    {"in": "query", "name": "interval_ms", "type": "integer", "description": "keepalive period in milliseconds, at most 60000"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}}}
        },
        "/api/v1/dashboard": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Dashboard snapshot", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardSnapshot"}}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/v1/dashboard/readings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Reading history, oldest first", "produces": ["application/json"],
                "responses": {"200": {"description": "count, readings"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/dashboard/feedings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Feeding history, newest first", "produces": ["application/json"],
                "responses": {"200": {"description": "count, feedings, feeding, success_rate"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/alerts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["alerts"], "summary": "List alerts", "produces": ["application/json"],
                "parameters": [{"in": "query", "name": "active", "type": "boolean"}],
                "responses": {"200": {"description": "count, alerts"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/alerts/{id}/dismiss": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["alerts"], "summary": "Dismiss alert", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "status, dismissed, alert"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/feed": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["feeder"], "summary": "Feed the fish", "produces": ["application/json"],
                "parameters": [{"in": "query", "name": "wait", "type": "boolean"}],
                "responses": {"200": {"description": "fed or already_feeding"}, "202": {"description": "feeding"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/logs": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["logs"], "summary": "List journal events", "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "from", "type": "string"},
                    {"in": "query", "name": "to", "type": "string"},
                    {"in": "query", "name": "type", "type": "string", "enum": ["READING", "ALERT", "FEEDING", "DISMISS"]}
                ],
                "responses": {"200": {"description": "count, events"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}}
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.SensorReading": {
            "type": "object",
            "properties": {"timestamp": {"type": "string"}, "ph": {"type": "number"}, "temperature": {"type": "number"}}
        },
        "models.FeedingRecord": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "timestamp": {"type": "string"},
                "kind": {"type": "string", "enum": ["manual", "scheduled"]}, "outcome": {"type": "string", "enum": ["success", "failed"]}}
        },
        "models.Alert": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "kind": {"type": "string", "enum": ["temperature", "ph", "feeding"]},
                "message": {"type": "string"}, "severity": {"type": "string", "enum": ["low", "medium", "high"]},
                "timestamp": {"type": "string"}, "dismissed": {"type": "boolean"}}
        },
        "models.DashboardSnapshot": {
            "type": "object",
            "properties": {
                "current": {"type": "object"},
                "reading_history": {"type": "array", "items": {"$ref": "#/definitions/models.SensorReading"}},
                "feeding_history": {"type": "array", "items": {"$ref": "#/definitions/models.FeedingRecord"}},
                "success_rate": {"type": "integer"},
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/models.Alert"}},
                "active_alerts": {"type": "array", "items": {"$ref": "#/definitions/models.Alert"}},
                "feeding": {"type": "boolean"}
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
	Title:            "AquaFeed API",
	Description:      "Simulated aquarium monitor: sensor readings, threshold alerts and a remote fish feeder.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
