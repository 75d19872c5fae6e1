package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ProFireManager API",
        "description": "Fire station shift scheduling and roster management",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and session"},
        {"name": "Employees", "description": "Personnel management"},
        {"name": "Availabilities", "description": "Part-time availability declarations"},
        {"name": "Shift Types", "description": "Recurring shift slot definitions"},
        {"name": "Planning", "description": "Weekly planning, auto-assignment and export"},
        {"name": "Replacements", "description": "Shift replacement requests"},
        {"name": "Dashboard", "description": "Station activity summary"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current authenticated employee",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the caller's password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "rank", "in": "query", "type": "string"},
                    {"name": "employmentType", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Create employee",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEmployeeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already in use"}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get employee",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Employees"],
                "summary": "Update employee",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEmployeeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Employees"],
                "summary": "Deactivate employee",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/employees/{id}/availabilities": {
            "get": {
                "tags": ["Availabilities"],
                "summary": "List an employee's declared availability",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availabilities"],
                "summary": "Replace an employee's declared availability",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shift-types": {
            "get": {
                "tags": ["Shift Types"],
                "summary": "List shift types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Shift Types"],
                "summary": "Create shift type",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateShiftTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shift-types/{id}": {
            "get": {
                "tags": ["Shift Types"],
                "summary": "Get shift type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Shift Types"],
                "summary": "Update shift type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateShiftTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Shift Types"],
                "summary": "Delete shift type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/planning": {
            "get": {
                "tags": ["Planning"],
                "summary": "Get the planning grid for a week",
                "parameters": [
                    {"name": "weekStart", "in": "query", "required": true, "type": "string", "description": "Monday, YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/assignments": {
            "post": {
                "tags": ["Planning"],
                "summary": "Manually assign an employee to a shift slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ManualAssignRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot taken or employee double-booked"}
                }
            }
        },
        "/planning/assignments/{id}": {
            "delete": {
                "tags": ["Planning"],
                "summary": "Remove an assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/planning/auto-assign": {
            "post": {
                "tags": ["Planning"],
                "summary": "Run the automatic assignment engine for a week",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AutoAssignRequest"}}
                ],
                "responses": {
                    "200": {"description": "Run report", "schema": {"$ref": "#/definitions/RosterRunReport"}},
                    "202": {"description": "Run queued"},
                    "409": {"description": "A run is already in progress for this week"}
                }
            }
        },
        "/planning/export": {
            "get": {
                "tags": ["Planning"],
                "summary": "Export the weekly roster as CSV or PDF",
                "parameters": [
                    {"name": "weekStart", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        },
        "/replacements": {
            "get": {
                "tags": ["Replacements"],
                "summary": "List all replacement requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Replacements"],
                "summary": "Request a replacement for one of the caller's assignments",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReplacementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/replacements/mine": {
            "get": {
                "tags": ["Replacements"],
                "summary": "List the caller's replacement requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/replacements/{id}/decision": {
            "post": {
                "tags": ["Replacements"],
                "summary": "Approve or refuse a replacement request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideReplacementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Station dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardStats"}}
                }
            }
        }
    },
    "definitions": {
        "Employee": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "emergency_contact": {"type": "string"},
                "rank": {"type": "string"},
                "employment_type": {"type": "string"},
                "role": {"type": "string"},
                "active": {"type": "boolean"},
                "employee_number": {"type": "string"},
                "hire_date": {"type": "string"},
                "max_weekly_hours": {"type": "integer"},
                "training_ids": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "ShiftType": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "required_staff": {"type": "integer"},
                "duration_hours": {"type": "integer"},
                "color": {"type": "string"},
                "applicable_days": {"type": "array", "items": {"type": "string"}},
                "officer_required": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Availability": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "employee_id": {"type": "string"},
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "AssignmentDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "employee_id": {"type": "string"},
                "shift_type_id": {"type": "string"},
                "date": {"type": "string"},
                "status": {"type": "string"},
                "origin": {"type": "string"},
                "employee_name": {"type": "string"},
                "employee_rank": {"type": "string"},
                "shift_type_name": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "ReplacementRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "assignment_id": {"type": "string"},
                "requester_id": {"type": "string"},
                "shift_type_id": {"type": "string"},
                "date": {"type": "string"},
                "reason": {"type": "string"},
                "status": {"type": "string"},
                "replacement_id": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "RosterRunReport": {
            "type": "object",
            "properties": {
                "week_start": {"type": "string"},
                "week_end": {"type": "string"},
                "assignments_created": {"type": "integer"},
                "unfilled_slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SlotRef"}
                },
                "month_hours": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "SlotRef": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "shift_type_id": {"type": "string"},
                "shift_type_name": {"type": "string"}
            }
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "active_personnel": {"type": "integer"},
                "shifts_this_week": {"type": "integer"},
                "hours_this_month": {"type": "integer"},
                "coverage_rate": {"type": "number"},
                "pending_replacements": {"type": "integer"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "old_password": {"type": "string"},
                "new_password": {"type": "string"}
            },
            "required": ["old_password", "new_password"]
        },
        "CreateEmployeeRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "phone": {"type": "string"},
                "emergency_contact": {"type": "string"},
                "rank": {"type": "string"},
                "employment_type": {"type": "string"},
                "role": {"type": "string"},
                "employee_number": {"type": "string"},
                "hire_date": {"type": "string"},
                "max_weekly_hours": {"type": "integer"},
                "training_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["first_name", "last_name", "email", "password", "rank", "employment_type", "role", "hire_date"]
        },
        "UpdateEmployeeRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "emergency_contact": {"type": "string"},
                "rank": {"type": "string"},
                "employment_type": {"type": "string"},
                "role": {"type": "string"},
                "active": {"type": "boolean"},
                "max_weekly_hours": {"type": "integer"},
                "training_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ReplaceAvailabilityRequest": {
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AvailabilityEntry"}
                }
            }
        },
        "AvailabilityEntry": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "status": {"type": "string"}
            },
            "required": ["date", "status"]
        },
        "CreateShiftTypeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "required_staff": {"type": "integer"},
                "duration_hours": {"type": "integer"},
                "applicable_days": {"type": "array", "items": {"type": "string"}},
                "officer_required": {"type": "boolean"},
                "color": {"type": "string"}
            },
            "required": ["name", "start_time", "end_time", "duration_hours"]
        },
        "UpdateShiftTypeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "required_staff": {"type": "integer"},
                "duration_hours": {"type": "integer"},
                "applicable_days": {"type": "array", "items": {"type": "string"}},
                "officer_required": {"type": "boolean"},
                "color": {"type": "string"}
            }
        },
        "ManualAssignRequest": {
            "type": "object",
            "properties": {
                "employee_id": {"type": "string"},
                "shift_type_id": {"type": "string"},
                "date": {"type": "string"}
            },
            "required": ["employee_id", "shift_type_id", "date"]
        },
        "AutoAssignRequest": {
            "type": "object",
            "properties": {
                "week_start": {"type": "string"},
                "async": {"type": "boolean"}
            },
            "required": ["week_start"]
        },
        "CreateReplacementRequest": {
            "type": "object",
            "properties": {
                "assignment_id": {"type": "string"},
                "reason": {"type": "string"}
            },
            "required": ["assignment_id", "reason"]
        },
        "DecideReplacementRequest": {
            "type": "object",
            "properties": {
                "approve": {"type": "boolean"},
                "replacement_id": {"type": "string"},
                "comment": {"type": "string"}
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
