package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Schedule validation and optimization for university course enrollment",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Login and token issuance"},
        {"name": "Catalog", "description": "Course catalog browsing"},
        {"name": "Planner", "description": "Schedule validation, optimization and persistence"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List catalog courses for a term",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List distinct subject codes offered in a term",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Fetch one course with sections and meetings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/plans/validate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Validate a section selection against hard constraints",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/optimize": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate ranked conflict-free schedule candidates",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OptimizePlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/save": {
            "post": {
                "tags": ["Planner"],
                "summary": "Persist one ranked candidate from a previous optimization",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SavePlanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Plan expired or unknown"}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Planner"],
                "summary": "List the caller's saved schedules for a term",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Planner"],
                "summary": "Fetch a saved schedule with resolved sections",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Schedule not found"}
                }
            },
            "delete": {
                "tags": ["Planner"],
                "summary": "Delete a saved schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Not the schedule owner"},
                    "404": {"description": "Schedule not found"}
                }
            }
        },
        "/schedules/{id}/submit": {
            "post": {
                "tags": ["Planner"],
                "summary": "Submit a draft schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule already submitted"}
                }
            }
        },
        "/schedules/{id}/export": {
            "get": {
                "tags": ["Planner"],
                "summary": "Download a saved schedule as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TimeWindowPayload": {
            "type": "object",
            "required": ["startTime", "endTime"],
            "properties": {
                "days": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            }
        },
        "ConstraintPayload": {
            "type": "object",
            "properties": {
                "requireAllCourses": {"type": "boolean"},
                "minCredits": {"type": "number"},
                "maxCredits": {"type": "number"},
                "excludedTimeWindows": {"type": "array", "items": {"$ref": "#/definitions/TimeWindowPayload"}},
                "excludedInstructors": {"type": "array", "items": {"type": "string"}},
                "maxConsecutiveMinutes": {"type": "integer"},
                "allowSameCourseOverlap": {"type": "boolean"}
            }
        },
        "PreferencePayload": {
            "type": "object",
            "properties": {
                "weights": {"type": "object"},
                "idealStartTime": {"type": "string"},
                "idealEndTime": {"type": "string"},
                "preferredInstructors": {"type": "array", "items": {"type": "string"}},
                "maxCandidates": {"type": "integer"}
            }
        },
        "ValidateScheduleRequest": {
            "type": "object",
            "properties": {
                "termId": {"type": "string"},
                "sectionIds": {"type": "array", "items": {"type": "string"}},
                "scheduleId": {"type": "string"},
                "courseIds": {"type": "array", "items": {"type": "string"}},
                "constraints": {"$ref": "#/definitions/ConstraintPayload"}
            }
        },
        "OptimizePlanRequest": {
            "type": "object",
            "required": ["termId", "courseIds"],
            "properties": {
                "termId": {"type": "string"},
                "courseIds": {"type": "array", "items": {"type": "string"}},
                "topK": {"type": "integer"},
                "allowPartial": {"type": "boolean"},
                "constraints": {"$ref": "#/definitions/ConstraintPayload"},
                "preferences": {"$ref": "#/definitions/PreferencePayload"}
            }
        },
        "SavePlanRequest": {
            "type": "object",
            "required": ["planId", "rank"],
            "properties": {
                "planId": {"type": "string"},
                "rank": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
