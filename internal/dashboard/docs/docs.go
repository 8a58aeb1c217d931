// Package docs holds the OpenAPI description of the dashboard API served under /swagger.
// Keep it in step with the godoc annotations on the handlers in delivery/http.
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
        "/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Dashboard options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OptionsResponse"}}
                }
            }
        },
        "/stocks/{symbol}/series": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Fetch an intraday series",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true},
                    {"type": "string", "description": "1min, 5min, 15min, 30min or 60min", "name": "interval", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StockSeriesResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/stocks/series": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Fetch or compare several series",
                "parameters": [
                    {"description": "Symbols and interval", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StockSeriesBatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.StockSeriesResult"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/market/movers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Top gainers and losers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MarketMoversResult"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/news/sentiment": {
            "get": {
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Fetch a news sentiment feed",
                "parameters": [
                    {"type": "string", "description": "Comma separated tickers", "name": "tickers", "in": "query", "required": true},
                    {"type": "string", "description": "Topic filter", "name": "topics", "in": "query"},
                    {"type": "integer", "description": "Number of articles, 1 to 1000", "name": "limit", "in": "query"},
                    {"type": "string", "description": "LATEST, EARLIEST or RELEVANCE", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NewsSentimentResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reports/sentiment": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate a sentiment report",
                "parameters": [
                    {"description": "Report options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SentimentReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SentimentReportResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reports/sentiment/{tickers}": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Get a saved sentiment report",
                "parameters": [
                    {"type": "string", "description": "Comma separated tickers", "name": "tickers", "in": "path", "required": true},
                    {"type": "boolean", "description": "Serve as attachment", "name": "download", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List saved data files",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SavedFileResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/files/{name}": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["files"],
                "summary": "Download a saved data file",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/qa/documents": {
            "post": {
                "produces": ["application/json"],
                "tags": ["qa"],
                "summary": "List indexed documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.QADocument"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/qa/answer": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["qa"],
                "summary": "Ask a question",
                "parameters": [
                    {"description": "Question", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.QAAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QAAnswerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.OptionsResponse": {
            "type": "object",
            "properties": {
                "popular_symbols": {"type": "array", "items": {"type": "string"}},
                "intervals": {"type": "array", "items": {"type": "string"}},
                "sort_orders": {"type": "array", "items": {"type": "string"}},
                "default_interval": {"type": "string"},
                "default_news_limit": {"type": "integer"},
                "default_relevance_threshold": {"type": "number"}
            }
        },
        "dto.StockSeriesBatchRequest": {
            "type": "object",
            "properties": {
                "symbols": {"type": "array", "items": {"type": "string"}},
                "manual_symbols": {"type": "string"},
                "interval": {"type": "string"}
            }
        },
        "entity.SeriesPoint": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "open": {"type": "string"},
                "high": {"type": "string"},
                "low": {"type": "string"},
                "close": {"type": "string"},
                "volume": {"type": "integer"}
            }
        },
        "dto.StockSeriesResult": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "interval": {"type": "string"},
                "file_path": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/entity.SeriesPoint"}},
                "error": {"type": "string"}
            }
        },
        "entity.Mover": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "ticker": {"type": "string"},
                "price": {"type": "string"},
                "change_amount": {"type": "string"},
                "change_percentage": {"type": "string"},
                "volume": {"type": "integer"}
            }
        },
        "dto.MarketMoversResult": {
            "type": "object",
            "properties": {
                "last_updated": {"type": "string"},
                "top_gainers": {"type": "array", "items": {"$ref": "#/definitions/entity.Mover"}},
                "top_losers": {"type": "array", "items": {"$ref": "#/definitions/entity.Mover"}},
                "most_actively_traded": {"type": "array", "items": {"$ref": "#/definitions/entity.Mover"}},
                "file_paths": {"type": "array", "items": {"type": "string"}}
            }
        },
        "entity.Topic": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "relevance": {"type": "number"}
            }
        },
        "entity.Article": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "summary": {"type": "string"},
                "url": {"type": "string"},
                "source": {"type": "string"},
                "sentiment_score": {"type": "number"},
                "sentiment_label": {"type": "string"},
                "published_at": {"type": "string"},
                "published_raw": {"type": "string"},
                "topics": {"type": "array", "items": {"$ref": "#/definitions/entity.Topic"}}
            }
        },
        "entity.FilteredArticle": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "summary": {"type": "string"},
                "url": {"type": "string"},
                "source": {"type": "string"},
                "sentiment_score": {"type": "number"},
                "sentiment_label": {"type": "string"},
                "published_at": {"type": "string"},
                "published_raw": {"type": "string"},
                "qualifying_topics": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.NewsSentimentResult": {
            "type": "object",
            "properties": {
                "tickers": {"type": "string"},
                "file_path": {"type": "string"},
                "articles": {"type": "array", "items": {"$ref": "#/definitions/entity.Article"}}
            }
        },
        "dto.SentimentReportRequest": {
            "type": "object",
            "properties": {
                "tickers": {"type": "string"},
                "topics": {"type": "string"},
                "limit": {"type": "integer"},
                "sort": {"type": "string"},
                "threshold": {"type": "number"},
                "notify": {"type": "boolean"}
            }
        },
        "dto.SentimentReportResult": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "threshold": {"type": "number"},
                "articles": {"type": "array", "items": {"$ref": "#/definitions/entity.FilteredArticle"}},
                "skipped": {"type": "integer"},
                "file_path": {"type": "string"},
                "feed_path": {"type": "string"},
                "notified": {"type": "boolean"}
            }
        },
        "dto.SavedFileResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "size": {"type": "integer"},
                "modified_at": {"type": "string"}
            }
        },
        "dto.QADocument": {
            "type": "object",
            "properties": {"path": {"type": "string"}}
        },
        "dto.QAAnswerRequest": {
            "type": "object",
            "properties": {"prompt": {"type": "string"}}
        },
        "dto.QAAnswerResponse": {
            "type": "object",
            "properties": {"answer": {"type": "object"}}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "time": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Market Sentiment Dashboard API",
	Description:      "Intraday series, market movers, news sentiment feeds and filtered PDF sentiment reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
