// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/media": {
            "get": {
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "List media",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.MediaListResult"}}
                }
            }
        },
        "/media/upload": {
            "post": {
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Upload media from the request body",
                "parameters": [
                    {"type": "string", "description": "original file name", "name": "fileName", "in": "query", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Media"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "411": {"description": "Length Required", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/media/upload-url": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Upload media from a URL",
                "parameters": [
                    {"description": "source url and optional file name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.uploadURLRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Media"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/media/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Get media",
                "parameters": [{"type": "string", "description": "media id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Media"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["media"],
                "summary": "Delete media",
                "parameters": [{"type": "string", "description": "media id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/media/{id}/content": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["media"],
                "summary": "Download media content",
                "parameters": [{"type": "string", "description": "media id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/media/{id}/link": {
            "get": {
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Presigned download link",
                "parameters": [
                    {"type": "string", "description": "media id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 900, "description": "expiry in seconds", "name": "expires", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.linkResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/store-api/language": {
            "get": {
                "produces": ["application/json"],
                "tags": ["store-api"],
                "summary": "List languages of a sales channel",
                "parameters": [
                    {"type": "string", "description": "sales channel access key", "name": "sw-access-key", "in": "header", "required": true},
                    {"type": "string", "description": "context token", "name": "sw-context-token", "in": "header"},
                    {"type": "integer", "default": 1, "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 100, "description": "limit", "name": "limit", "in": "query"},
                    {"type": "string", "description": "name or locale prefix", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/route.LanguageRouteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "handler.linkResponse": {
            "type": "object",
            "properties": {"expires_at": {"type": "string"}, "url": {"type": "string"}}
        },
        "handler.uploadURLRequest": {
            "type": "object",
            "properties": {"file_name": {"type": "string"}, "url": {"type": "string"}}
        },
        "model.Language": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "locale": {"type": "string"},
                "name": {"type": "string"},
                "parent_id": {"type": "string"}
            }
        },
        "model.Media": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "extension": {"type": "string"},
                "file_name": {"type": "string"},
                "id": {"type": "string"},
                "mime_type": {"type": "string"},
                "size": {"type": "integer"},
                "source_url": {"type": "string"},
                "storage_path": {"type": "string"}
            }
        },
        "route.LanguageRouteResponse": {
            "type": "object",
            "properties": {
                "elements": {"type": "array", "items": {"$ref": "#/definitions/model.Language"}},
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "service.MediaListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Media"}},
                "total": {"type": "integer"}
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
	Title:            "Media API",
	Description:      "Media ingestion from request bodies and remote URLs, plus the store-api language route.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
