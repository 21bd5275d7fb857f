package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Planner Wizard API",
        "description": "Server-side sessions for the weekly timetable wizard, backed by the remote plan-generation service.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sessions", "description": "Session lifecycle and reset"},
        {"name": "Steps", "description": "Step-1 form and navigation"},
        {"name": "Grids", "description": "Workload and availability grids"},
        {"name": "Snapshots", "description": "Share links and raw snapshots"},
        {"name": "Documents", "description": "Per-step import/export documents"},
        {"name": "Generation", "description": "Plan generation, progress and PDFs"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Create or resume a wizard session",
                "description": "Without a fragment the session starts at factory defaults and any durable slot is cleared; with a fragment the state rehydrates from it exclusively. A fragment that cannot be decoded is rejected with DECODE_ERROR rather than silently ignored, so callers can surface the broken link.",
                "parameters": [
                    {"name": "state", "in": "query", "type": "string", "description": "URL-safe base64 state fragment"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/OpenSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed fragment (DECODE_ERROR)"}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get a session's current state",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session"}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Drop a session from memory",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Dropped"}
                }
            }
        },
        "/sessions/{id}/step1": {
            "put": {
                "tags": ["Steps"],
                "summary": "Submit the step-1 form",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Step1Request"}}
                ],
                "responses": {
                    "200": {"description": "Committed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure with per-field flags"}
                }
            }
        },
        "/sessions/{id}/navigate": {
            "post": {
                "tags": ["Steps"],
                "summary": "Move between wizard steps",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NavigateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Transition performed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Transition refused"}
                }
            }
        },
        "/sessions/{id}/hours": {
            "patch": {
                "tags": ["Grids"],
                "summary": "Edit one workload cell",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoursEditRequest"}}
                ],
                "responses": {
                    "200": {"description": "Row total recomputed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Grid not built yet"}
                }
            }
        },
        "/sessions/{id}/availability": {
            "patch": {
                "tags": ["Grids"],
                "summary": "Flip one availability checkbox",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AvailabilityEditRequest"}}
                ],
                "responses": {
                    "200": {"description": "Percentage recomputed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Grid not built yet"}
                }
            }
        },
        "/sessions/{id}/grids/hours": {
            "get": {
                "tags": ["Grids"],
                "summary": "Get the workload grid in display order",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/grids/availability": {
            "get": {
                "tags": ["Grids"],
                "summary": "Get the availability grid in display order",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/summary": {
            "get": {
                "tags": ["Grids"],
                "summary": "Get the final-step recap",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/share-link": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Get a shareable state link",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/snapshot": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Export the raw session snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Snapshots"],
                "summary": "Replace the session state from a snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Rehydrated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/documents/step1": {
            "get": {
                "tags": ["Documents"],
                "summary": "Export the step-1 parameters document",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Documents"],
                "summary": "Import a step-1 parameters document",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/sessions/{id}/documents/hours": {
            "get": {
                "tags": ["Documents"],
                "summary": "Export the workload matrix document",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Documents"],
                "summary": "Import a workload matrix document",
                "description": "Declared dimensions must match the live configuration exactly or the import is rejected wholesale.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Dimension mismatch"}
                }
            }
        },
        "/sessions/{id}/documents/availability": {
            "get": {
                "tags": ["Documents"],
                "summary": "Export the availability matrix document",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Documents"],
                "summary": "Import an availability matrix document",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Dimension mismatch"}
                }
            }
        },
        "/sessions/{id}/seed": {
            "patch": {
                "tags": ["Generation"],
                "summary": "Toggle the seed lock",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SeedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/method": {
            "patch": {
                "tags": ["Generation"],
                "summary": "Switch the generation method",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MethodRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/reset": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Reset the state owned by one step",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/plan": {
            "post": {
                "tags": ["Generation"],
                "summary": "Generate a plan",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Plan generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Generation already running or payload incomplete"},
                    "502": {"description": "Planner failed or unreachable"}
                }
            },
            "get": {
                "tags": ["Generation"],
                "summary": "Get the last generated plan",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No plan generated yet"}
                }
            }
        },
        "/sessions/{id}/plan/progress": {
            "get": {
                "tags": ["Generation"],
                "summary": "Get the generation progress estimate",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/plan/documents/classes-pdf": {
            "post": {
                "tags": ["Generation"],
                "summary": "Render the per-class timetable PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF stream"},
                    "409": {"description": "No plan generated yet"}
                }
            }
        },
        "/sessions/{id}/plan/documents/professors-pdf": {
            "post": {
                "tags": ["Generation"],
                "summary": "Render the per-professor timetable PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF stream"},
                    "409": {"description": "No plan generated yet"}
                }
            }
        }
    },
    "definitions": {
        "OpenSessionRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "fragment": {"type": "string"}
            }
        },
        "Step1Request": {
            "type": "object",
            "properties": {
                "days": {"type": "string"},
                "morning_hours": {"type": "string"},
                "afternoon_hours": {"type": "string"},
                "num_professors": {"type": "string"},
                "num_classes": {"type": "string"},
                "free_afternoon_enabled": {"type": "boolean"},
                "free_afternoon_day": {"type": "string"},
                "professor_names": {"type": "string"},
                "class_names": {"type": "string"},
                "day_names": {"type": "string"},
                "hour_names": {"type": "string"}
            }
        },
        "NavigateRequest": {
            "type": "object",
            "properties": {
                "direction": {"type": "string", "enum": ["next", "back"]},
                "target": {"type": "integer", "minimum": 1, "maximum": 4}
            }
        },
        "HoursEditRequest": {
            "type": "object",
            "properties": {
                "professor": {"type": "integer"},
                "class": {"type": "integer"},
                "value": {"type": "string"}
            }
        },
        "AvailabilityEditRequest": {
            "type": "object",
            "properties": {
                "professor": {"type": "integer"},
                "day": {"type": "integer"},
                "part": {"type": "integer", "minimum": 0, "maximum": 1},
                "value": {"type": "boolean"}
            }
        },
        "SeedRequest": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"},
                "seed": {"type": "integer", "minimum": 0, "maximum": 9999999}
            }
        },
        "MethodRequest": {
            "type": "object",
            "properties": {
                "method": {"type": "string", "enum": ["mip", "random"]}
            }
        },
        "ResetRequest": {
            "type": "object",
            "properties": {
                "step": {"type": "integer", "minimum": 1, "maximum": 4}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
