// Package docs registers the OpenAPI document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "LoL Stats"},
        "license": {"name": "MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/series/{id}": {
            "get": {
                "description": "Returns base ID, game number, format, full score and the score entering this game. Standalone matches report format 1.",
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Get series info for a match",
                "parameters": [
                    {"type": "string", "description": "Match identifier, e.g. LCK2024_T1_GEN_2", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/series.Info"}}
                }
            }
        },
        "/series/{id}/score": {
            "get": {
                "description": "Tallies wins for the blue and red team IDs. With before=N only games numbered below N count.",
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Get series score",
                "parameters": [
                    {"type": "string", "description": "Base series identifier", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Blue side team ID", "name": "blue", "in": "query", "required": true},
                    {"type": "string", "description": "Red side team ID", "name": "red", "in": "query", "required": true},
                    {"type": "integer", "description": "Only count games before this game number", "name": "before", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/series.Score"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/series/{id}/format": {
            "get": {
                "description": "Returns 1 for a lone game, 3/5/7 for standard series, 3 for unreliable groupings and null when no games exist.",
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Get series format",
                "parameters": [
                    {"type": "string", "description": "Base series identifier", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/timeline/{entityType}/{entityID}": {
            "get": {
                "description": "Returns averages of gold, XP, CS, diffs and K/D/A at 10, 15, 20 and 25 minutes.",
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Get timeline stats",
                "parameters": [
                    {"enum": ["player", "team"], "type": "string", "description": "Entity type", "name": "entityType", "in": "path", "required": true},
                    {"type": "string", "description": "Entity ID", "name": "entityID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/timeline.StatPoint"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/cache/clear": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cache"],
                "summary": "Clear stats cache",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        },
        "series.Score": {
            "type": "object",
            "properties": {
                "blue": {"type": "integer"},
                "red": {"type": "integer"}
            }
        },
        "series.Info": {
            "type": "object",
            "properties": {
                "match_id": {"type": "string"},
                "base_id": {"type": "string"},
                "game_number": {"type": "integer"},
                "is_series": {"type": "boolean"},
                "is_standard": {"type": "boolean"},
                "format": {"type": "integer"},
                "games_played": {"type": "integer"},
                "team_blue_id": {"type": "string"},
                "team_red_id": {"type": "string"},
                "score": {"$ref": "#/definitions/series.Score"},
                "score_before_game": {"$ref": "#/definitions/series.Score"}
            }
        },
        "timeline.StatPoint": {
            "type": "object",
            "properties": {
                "avg_gold": {"type": "number"},
                "avg_xp": {"type": "number"},
                "avg_cs": {"type": "number"},
                "avg_gold_diff": {"type": "number"},
                "avg_cs_diff": {"type": "number"},
                "avg_kills": {"type": "number"},
                "avg_deaths": {"type": "number"},
                "avg_assists": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "LoL Esports Stats API",
	Description:      "Series validation, scoring and timeline checkpoint averages for League of Legends esports matches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
