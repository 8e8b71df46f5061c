// Package docs registers the OpenAPI description of the shipping service
// with swag so echo-swagger can serve it under /swagger/.
// Keep it in sync with the @-annotations on the handlers.
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
        "/get-quote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipping"],
                "summary": "Quote the shipping cost of a cart",
                "parameters": [
                    {
                        "description": "Cart items and optional address",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.getQuoteRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.getQuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ship-order": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipping"],
                "summary": "Ship an order and obtain its tracking id",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Replays the tracking id of an earlier call with the same key",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Order placeholder",
                        "name": "body",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/handler.shipOrderRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shipOrderResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.addressRequest": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "state": {"type": "string"},
                "streetAddress": {"type": "string"},
                "zipCode": {"type": "string"}
            }
        },
        "handler.itemRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "string"},
                "quantity": {"type": "integer", "minimum": 0, "maximum": 4294967295}
            }
        },
        "handler.getQuoteRequest": {
            "type": "object",
            "properties": {
                "address": {"$ref": "#/definitions/handler.addressRequest"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.itemRequest"}}
            }
        },
        "handler.moneyResponse": {
            "type": "object",
            "properties": {
                "currencyCode": {"type": "string"},
                "nanos": {"type": "integer"},
                "units": {"type": "integer"}
            }
        },
        "handler.getQuoteResponse": {
            "type": "object",
            "properties": {
                "costUsd": {"$ref": "#/definitions/handler.moneyResponse"}
            }
        },
        "handler.shipOrderRequest": {
            "type": "object",
            "properties": {
                "address": {"$ref": "#/definitions/handler.addressRequest"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.itemRequest"}}
            }
        },
        "handler.shipOrderResponse": {
            "type": "object",
            "properties": {
                "trackingId": {"type": "string"}
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
	Title:            "Shipping Service API",
	Description:      "Shipping cost quotes and shipment tracking ids.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
