// Package docs registers the API description served at /swagger.
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
        "/api/orders": {
            "get": {
                "description": "Allows to get all orders sorted by order number",
                "produces": ["application/json"],
                "summary": "GetAllOrders",
                "operationId": "get-all-orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.getAllOrdersResponse"}},
                    "default": {"description": "", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "post": {
                "description": "Creates an order from the sales console. Wooden orders get their cut list derived.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "CreateOrder",
                "operationId": "create-order",
                "parameters": [
                    {"description": "order draft", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Draft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/orders/preview": {
            "post": {
                "description": "Computes the wooden cut list without saving anything",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "PreviewWoodenSpec",
                "operationId": "preview-wooden-spec",
                "parameters": [
                    {"description": "dimensions", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.previewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.WoodenSpec"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/orders/stream": {
            "get": {
                "description": "Server-sent events. Every \"orders\" event carries the whole collection, the first one right away.",
                "produces": ["text/event-stream"],
                "summary": "StreamOrders",
                "operationId": "stream-orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.getAllOrdersResponse"}}
                }
            }
        },
        "/api/orders/{id}": {
            "get": {
                "description": "Allows to get a specific order via its id",
                "produces": ["application/json"],
                "summary": "GetOrderById",
                "operationId": "get-order-by-id",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Order"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "put": {
                "description": "Changes sales-editable fields. Order type and number cannot change.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "EditOrder",
                "operationId": "edit-order",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OrderEdit"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Order"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/orders/{id}/status": {
            "put": {
                "description": "Sets any status directly, including backwards corrections. Audit logged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "SetOrderStatus",
                "operationId": "set-order-status",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "new status", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.setStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Order"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/production/orders": {
            "get": {
                "description": "Orders the floor still has to work on, completed ones excluded",
                "produces": ["application/json"],
                "summary": "GetProductionQueue",
                "operationId": "get-production-queue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.getAllOrdersResponse"}}
                }
            }
        },
        "/api/production/orders/{id}/advance": {
            "post": {
                "description": "Moves an order one step forward. A completed order is returned with advanced=false.",
                "produces": ["application/json"],
                "summary": "AdvanceOrder",
                "operationId": "advance-order",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.advanceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.errorResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "http.getAllOrdersResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}}}
        },
        "http.advanceResponse": {
            "type": "object",
            "properties": {"order": {"$ref": "#/definitions/models.Order"}, "advanced": {"type": "boolean"}}
        },
        "http.setStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["pending", "in-progress", "ready", "completed"]}}
        },
        "http.previewRequest": {
            "type": "object",
            "properties": {
                "width": {"type": "number"},
                "height": {"type": "number"},
                "base_size": {"type": "string", "enum": ["35mm", "50mm"]}
            }
        },
        "service.Created": {
            "type": "object",
            "properties": {"order": {"$ref": "#/definitions/models.Order"}, "warning": {"type": "string"}}
        },
        "models.WoodenSpec": {
            "type": "object",
            "properties": {
                "number_of_slats": {"type": "integer"},
                "tilt_cord_length": {"type": "number"},
                "cord_length": {"type": "number"},
                "ladder_tape_size": {"type": "number"},
                "ms_road": {"type": "number"},
                "channel_uching": {"type": "number"},
                "channel_uching_cm": {"type": "number"}
            }
        },
        "models.Draft": {
            "type": "object",
            "required": ["order_type", "customer_name", "width", "height", "quantity"],
            "properties": {
                "order_type": {"type": "string", "enum": ["normal", "wooden"]},
                "customer_name": {"type": "string"},
                "customer_email": {"type": "string"},
                "customer_phone": {"type": "string"},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "quantity": {"type": "integer"},
                "fabric_code": {"type": "string"},
                "image_url": {"type": "string"},
                "base_size": {"type": "string", "enum": ["35mm", "50mm"]},
                "wooden_color_code": {"type": "string"},
                "operating_side": {"type": "string", "enum": ["left", "right"]},
                "notes": {"type": "string"}
            }
        },
        "models.OrderEdit": {
            "type": "object",
            "properties": {
                "customer_name": {"type": "string"},
                "customer_email": {"type": "string"},
                "customer_phone": {"type": "string"},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "quantity": {"type": "integer"},
                "fabric_code": {"type": "string"},
                "image_url": {"type": "string"},
                "base_size": {"type": "string", "enum": ["35mm", "50mm"]},
                "wooden_color_code": {"type": "string"},
                "operating_side": {"type": "string", "enum": ["left", "right"]},
                "notes": {"type": "string"}
            }
        },
        "models.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "order_number": {"type": "string"},
                "order_type": {"type": "string", "enum": ["normal", "wooden"]},
                "status": {"type": "string", "enum": ["pending", "in-progress", "ready", "completed"]},
                "customer_name": {"type": "string"},
                "customer_email": {"type": "string"},
                "customer_phone": {"type": "string"},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "quantity": {"type": "integer"},
                "fabric_code": {"type": "string"},
                "image_url": {"type": "string"},
                "base_size": {"type": "string", "enum": ["35mm", "50mm"]},
                "wooden_color_code": {"type": "string"},
                "operating_side": {"type": "string", "enum": ["left", "right"]},
                "number_of_slats": {"type": "integer"},
                "tilt_cord_length": {"type": "number"},
                "cord_length": {"type": "number"},
                "ladder_tape_size": {"type": "number"},
                "ms_road": {"type": "number"},
                "channel_uching": {"type": "number"},
                "channel_uching_cm": {"type": "number"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "created_by": {"type": "string"},
                "updated_at": {"type": "string"},
                "updated_by": {"type": "string"}
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
	Title:            "Blinds Orders API",
	Description:      "Sales and production consoles for made-to-measure blinds orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
