package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sekretar 2.0 API",
        "description": "AI-assisted drafting, compliance review, archiving and EDMS export for official correspondence",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and session introspection"},
        {"name": "Users", "description": "User directory (admin only)"},
        {"name": "Workspace", "description": "Source upload, instruction and draft generation"},
        {"name": "Dictation", "description": "Voice capture appended to the instruction"},
        {"name": "Review", "description": "Legal compliance audit of the draft"},
        {"name": "Archive", "description": "Log of generated responses"},
        {"name": "Export", "description": "EDMS interchange packages"}
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
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List user accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create a user account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username already exists"}
                }
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Delete a user account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Cannot delete the last admin"}
                }
            }
        },
        "/workspace": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Current workspace state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/source": {
            "put": {
                "tags": ["Workspace"],
                "summary": "Attach the source document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttachSourceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/instruction": {
            "put": {
                "tags": ["Workspace"],
                "summary": "Replace the instruction text",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetInstructionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/draft": {
            "put": {
                "tags": ["Workspace"],
                "summary": "Apply a manual edit to the draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/generate": {
            "post": {
                "tags": ["Workspace"],
                "summary": "Run one drafting cycle",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing file, blank instruction or busy dictation"},
                    "502": {"description": "Generation service failed"}
                }
            }
        },
        "/workspace/reset": {
            "post": {
                "tags": ["Workspace"],
                "summary": "Clear the workspace",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dictation/start": {
            "post": {
                "tags": ["Dictation"],
                "summary": "Start a dictation session",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Device unavailable"}
                }
            }
        },
        "/dictation/chunk": {
            "post": {
                "tags": ["Dictation"],
                "summary": "Append an audio chunk",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "No active session or chunk rejected"}
                }
            }
        },
        "/dictation/stop": {
            "post": {
                "tags": ["Dictation"],
                "summary": "Stop recording and transcribe",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Transcription failed"}
                }
            }
        },
        "/review": {
            "get": {
                "tags": ["Review"],
                "summary": "Current review state and result",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Review"],
                "summary": "Analyze the current draft",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Analysis failed or unparsable"}
                }
            }
        },
        "/review/apply": {
            "post": {
                "tags": ["Review"],
                "summary": "Accept the suggested revision",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "No applicable result"}
                }
            }
        },
        "/archive": {
            "get": {
                "tags": ["Archive"],
                "summary": "List archived responses",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/archive/{id}": {
            "delete": {
                "tags": ["Archive"],
                "summary": "Delete an archived response",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/archive/{id}/sent": {
            "post": {
                "tags": ["Archive"],
                "summary": "Mark an archived response as sent",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/archive/report": {
            "get": {
                "tags": ["Archive"],
                "summary": "Download the archive as a tabular report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/export": {
            "post": {
                "tags": ["Export"],
                "summary": "Download an EDMS interchange package",
                "parameters": [
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["onec", "directum", "delo"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Empty response text"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "required_role": {"type": "string", "enum": ["ADMIN", "USER"]}
            },
            "required": ["username", "password"]
        },
        "NewUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "position": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "USER"]}
            },
            "required": ["username", "password", "name", "email", "role"]
        },
        "AttachSourceRequest": {
            "type": "object",
            "properties": {
                "base64": {"type": "string"},
                "mime_type": {"type": "string"},
                "file_name": {"type": "string"}
            },
            "required": ["base64", "mime_type"]
        },
        "SetInstructionRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "SetDraftRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            },
            "required": ["text"]
        },
        "LegalAnalysisResult": {
            "type": "object",
            "properties": {
                "hasRisks": {"type": "boolean"},
                "riskLevel": {"type": "string", "enum": ["SAFE", "WARNING", "CRITICAL"]},
                "issues": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/LegalIssue"}
                },
                "generalComment": {"type": "string"},
                "revisedText": {"type": "string"}
            }
        },
        "LegalIssue": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "severity": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
                "citation": {"type": "string"}
            }
        },
        "ArchiveItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timestamp": {"type": "integer"},
                "fileName": {"type": "string"},
                "fileType": {"type": "string"},
                "instruction": {"type": "string"},
                "responseText": {"type": "string"},
                "status": {"type": "string", "enum": ["DRAFT", "SENT"]}
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
