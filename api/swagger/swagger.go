package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Edu-Pilot Timetable API",
        "description": "Generates exam and weekly school timetables and exports them as CSV or PDF.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetables", "description": "Roster, exam and weekly timetable generation"},
        {"name": "System", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Preview store unavailable"}
                }
            }
        },
        "/api/v1/metrics/summary": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated generation and cache statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/roster": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Build the section-level teacher roster",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BuildRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid teacher table", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/exam": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate an exam timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid subject table or dates", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No usable exam dates", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/weekly": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate weekly class and teacher timetables",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateWeeklyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid teacher table", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/previews/{id}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Fetch a generated timetable preview",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Preview not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Timetables"],
                "summary": "Discard a generated timetable preview",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/timetables/previews/{id}/export": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Export a preview as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Preview or target not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/downloads/{token}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Download an exported timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Table": {
            "type": "array",
            "items": {"type": "array", "items": {"type": "string"}}
        },
        "BuildRosterRequest": {
            "type": "object",
            "properties": {
                "teachers": {"$ref": "#/definitions/Table"},
                "sections": {"type": "integer"},
                "seed": {"type": "integer"}
            },
            "required": ["teachers"]
        },
        "GenerateExamRequest": {
            "type": "object",
            "properties": {
                "subjects": {"$ref": "#/definitions/Table"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "seed": {"type": "integer"}
            },
            "required": ["subjects", "startDate", "endDate"]
        },
        "GenerateWeeklyRequest": {
            "type": "object",
            "properties": {
                "teachers": {"$ref": "#/definitions/Table"},
                "subjects": {"$ref": "#/definitions/Table"},
                "sections": {"type": "integer"},
                "seed": {"type": "integer"}
            },
            "required": ["teachers"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "view": {"type": "string", "enum": ["exam", "classes", "teachers"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "target": {"type": "string"}
            },
            "required": ["view", "format"]
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
