// Package docs holds the OpenAPI document served under /swagger.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Open a USER account",
                "parameters": [
                    {"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe for every backing store",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/v1/matches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Two-way swap candidates for the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.MatchCandidate"}}}
                }
            }
        },
        "/v1/skills": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["skills"],
                "summary": "List skills",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "query"},
                    {"type": "string", "enum": ["OFFERED", "NEEDED"], "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.skillResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["skills"],
                "summary": "List a skill for the caller",
                "parameters": [
                    {"description": "Skill", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createSkillRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.skillResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/skills/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["skills"],
                "summary": "Remove one of the caller's skills",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/swaps": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["swaps"],
                "summary": "Swaps the caller takes part in",
                "parameters": [{"type": "string", "name": "state", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.swapDetailResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["swaps"],
                "summary": "Propose a swap",
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Proposal", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createSwapRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replayed", "schema": {"$ref": "#/definitions/handler.swapResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.swapResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/swaps/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["swaps"],
                "summary": "Get one swap",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.swapResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["swaps"],
                "summary": "Move a swap to its next state",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Target state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.transitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.swapResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/swaps/{id}/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["swaps"],
                "summary": "State history of a swap",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.swapEventResponse"}}}
                }
            }
        },
        "/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Directory of active users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}}
                }
            }
        },
        "/v1/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Profile of the caller",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/v1/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Public profile",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/ws": {
            "get": {
                "tags": ["notifications"],
                "summary": "Websocket stream of swap notifications",
                "parameters": [{"type": "string", "name": "token", "in": "query", "required": true}],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/v1/admin/metrics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Platform counters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PlatformMetrics"}}}
            }
        },
        "/v1/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Every account, optionally with skills",
                "parameters": [{"type": "boolean", "name": "include_skills", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.adminUserResponse"}}}
                }
            }
        },
        "/v1/admin/users/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Suspend or reinstate an account",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Flag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setActiveRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/v1/admin/swaps": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Every swap with participant activity",
                "parameters": [{"type": "string", "name": "state", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.swapDetailResponse"}}}
                }
            }
        },
        "/v1/admin/swaps/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a swap",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/admin/swaps/{id}/terminate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Force an open swap to REJECTED",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.swapResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.MatchCandidate": {
            "type": "object",
            "properties": {
                "user_b_id": {"type": "string"},
                "my_skill_id": {"type": "string"},
                "their_skill_id": {"type": "string"},
                "match_score": {"type": "number"},
                "match_type": {"type": "string", "enum": ["PERFECT", "SIMILAR"]}
            }
        },
        "domain.PlatformMetrics": {
            "type": "object",
            "properties": {
                "total_users": {"type": "integer"},
                "active_users": {"type": "integer"},
                "suspended_users": {"type": "integer"},
                "total_skills": {"type": "integer"},
                "offered_skills": {"type": "integer"},
                "needed_skills": {"type": "integer"},
                "active_swaps": {"type": "integer"},
                "completed_swaps": {"type": "integer"},
                "recent_swaps": {"type": "integer"},
                "swaps_by_state": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "bio": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "bio": {"type": "string"},
                "rating": {"type": "number"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/handler.userResponse"}}
        },
        "handler.adminUserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "is_active": {"type": "boolean"},
                "skills": {
                    "type": "object",
                    "properties": {
                        "offered": {"type": "array", "items": {"$ref": "#/definitions/handler.skillResponse"}},
                        "needed": {"type": "array", "items": {"$ref": "#/definitions/handler.skillResponse"}}
                    }
                }
            }
        },
        "handler.setActiveRequest": {
            "type": "object",
            "required": ["is_active"],
            "properties": {"is_active": {"type": "boolean"}}
        },
        "handler.createSkillRequest": {
            "type": "object",
            "required": ["skill_category", "skill_level", "skill_name", "type"],
            "properties": {
                "skill_name": {"type": "string"},
                "skill_category": {"type": "string"},
                "skill_level": {"type": "string", "enum": ["Beginner", "Intermediate", "Expert"]},
                "type": {"type": "string", "enum": ["OFFERED", "NEEDED"]}
            }
        },
        "handler.skillResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "skill_name": {"type": "string"},
                "skill_category": {"type": "string"},
                "skill_level": {"type": "string"},
                "type": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.createSwapRequest": {
            "type": "object",
            "required": ["skill_a_id", "skill_b_id", "user_b_id"],
            "properties": {
                "user_b_id": {"type": "string"},
                "skill_a_id": {"type": "string"},
                "skill_b_id": {"type": "string"},
                "match_score": {"type": "number", "minimum": 0, "maximum": 1},
                "message": {"type": "string", "maxLength": 1000}
            }
        },
        "handler.transitionRequest": {
            "type": "object",
            "required": ["state"],
            "properties": {"state": {"type": "string", "enum": ["ACCEPTED", "IN_PROGRESS", "COMPLETED", "REJECTED"]}}
        },
        "handler.swapResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_a_id": {"type": "string"},
                "user_b_id": {"type": "string"},
                "skill_a_id": {"type": "string"},
                "skill_b_id": {"type": "string"},
                "match_score": {"type": "number"},
                "state": {"type": "string"},
                "allowed_next": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "_links": {"type": "object", "properties": {"self": {"type": "string"}, "events": {"type": "string"}}}
            }
        },
        "handler.swapDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "state": {"type": "string"},
                "user_a_name": {"type": "string"},
                "user_b_name": {"type": "string"},
                "skill_a_name": {"type": "string"},
                "skill_b_name": {"type": "string"},
                "user_a_active": {"type": "boolean"},
                "user_b_active": {"type": "boolean"}
            }
        },
        "handler.swapEventResponse": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"},
                "actor_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Skill Swap API",
	Description:      "Peer-to-peer skill exchange: listings, two-way matching and the swap lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
