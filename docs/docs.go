package docs

import "github.com/swaggo/swag"

// docTemplate mirrors the annotations in swagger.go and the handler
// packages. Keep the two in sync when a route or response type changes.
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
        "/change-status": {
            "patch": {
                "security": [{"Bearer": []}],
                "description": "Active users become inactive and inactive users become active, in one bulk update.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Toggle every user's status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlerutil.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/get-distance": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "The origin is taken from the coordinates embedded in the bearer token.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Distance from the caller to a destination",
                "parameters": [
                    {"type": "number", "description": "Destination latitude in degrees", "name": "destination_latitude", "in": "query", "required": true},
                    {"type": "number", "description": "Destination longitude in degrees", "name": "destination_longitude", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.DistanceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Reports \"ok\" when the primary answers a ping, \"down\" otherwise",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        },
        "/user-listing": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Weekdays with no users are left out of the response.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Users grouped by registration weekday",
                "parameters": [
                    {"type": "string", "example": "0,6", "description": "Comma separated weekdays, 0=Sunday .. 6=Saturday", "name": "week_number", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperr.E"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "ok"}}
        },
        "handlerutil.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string", "example": "All user statuses toggled"},
                "status_code": {"type": "integer", "example": 200}
            }
        },
        "httperr.E": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Invalid request body"},
                "status_code": {"type": "integer", "example": 400}
            }
        },
        "users.Contact": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "jane@example.com"},
                "name": {"type": "string", "example": "Jane Doe"}
            }
        },
        "users.DistanceResponse": {
            "type": "object",
            "properties": {
                "distance": {"type": "string", "example": "12.34 km"},
                "message": {"type": "string", "example": "Distance calculated"},
                "status_code": {"type": "integer", "example": 200}
            }
        },
        "users.ListingResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/users.Contact"}}
                },
                "message": {"type": "string", "example": "User listing by day"},
                "status_code": {"type": "integer", "example": 200}
            }
        },
        "users.RegisterRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "221B Baker Street, London"},
                "email": {"type": "string", "example": "jane@example.com"},
                "latitude": {"type": "number", "example": 51.5237},
                "longitude": {"type": "number", "example": -0.1585},
                "name": {"type": "string", "example": "Jane Doe"},
                "password": {"type": "string", "example": "secret"}
            }
        },
        "users.RegisterResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/users.User"},
                "message": {"type": "string", "example": "User created successfully"},
                "status_code": {"type": "integer", "example": 200}
            }
        },
        "users.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "221B Baker Street, London"},
                "email": {"type": "string", "example": "jane@example.com"},
                "id": {"type": "string", "example": "683cdb8aa96ad71e8e075bd1"},
                "latitude": {"type": "number", "example": 51.5237},
                "longitude": {"type": "number", "example": -0.1585},
                "name": {"type": "string", "example": "Jane Doe"},
                "register_at": {"type": "string", "example": "2025-06-01T23:00:26.005Z"},
                "status": {"type": "string", "example": "active"},
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Geo Users API",
	Description:      "User registration, bulk status toggling, distance from the caller and weekday listings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
