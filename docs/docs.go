// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a customer account",
                "parameters": [{"description": "account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/dashboard/statistics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}}}
            }
        },
        "/dashboard/revenue": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Monthly revenue",
                "parameters": [{"type": "integer", "description": "number of months (max 24)", "name": "months", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}}}
            }
        },
        "/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "name contains", "name": "search", "in": "query"},
                    {"type": "string", "description": "category", "name": "category", "in": "query"},
                    {"type": "boolean", "description": "admins only", "name": "include_archived", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "page offset", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create product",
                "parameters": [{"description": "product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProductInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/products/{id}/image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Upload product image",
                "parameters": [
                    {"type": "string", "description": "product ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "jpeg, png, webp or gif up to 4 MiB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place order",
                "parameters": [{"description": "order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PlaceOrderInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "409": {"description": "insufficient stock", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "promotion not applicable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/orders/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Update order status",
                "parameters": [
                    {"type": "string", "description": "order ID", "name": "id", "in": "path", "required": true},
                    {"description": "next status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.statusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "422": {"description": "transition not allowed", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"type": "string", "description": "all, unread or read", "name": "filter", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "page offset", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.notificationListPayload"}}}
            }
        },
        "/organizations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["organizations"],
                "summary": "Create organization",
                "parameters": [{"description": "organization", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.OrganizationInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "409": {"description": "slug taken", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/organizations/{id}/invitations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["organizations"],
                "summary": "Invite member",
                "parameters": [
                    {"type": "string", "description": "organization ID", "name": "id", "in": "path", "required": true},
                    {"description": "invitee", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.InviteInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "409": {"description": "already a member or invitation pending", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/organizations/{id}/documents": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload document",
                "parameters": [
                    {"type": "string", "description": "organization ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "pdf or image up to 10 MiB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/memberships/me": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["memberships"],
                "summary": "Subscribe to a plan",
                "parameters": [{"description": "plan and months", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SubscribeInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}}}
            }
        },
        "/promotions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Create promotion",
                "parameters": [{"description": "promotion", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PromotionInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "409": {"description": "code taken", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/promotions/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Quote a promotion code",
                "parameters": [{"description": "code and subtotal", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.validatePromotionRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successPayload"}},
                    "422": {"description": "code not applicable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/validate.FieldError"}}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "request_id": {"type": "string"},
                "error": {"$ref": "#/definitions/handler.errorEnvelope"}
            }
        },
        "handler.successPayload": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {}
            }
        },
        "handler.notificationListPayload": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {"type": "array", "items": {"type": "object"}},
                "total": {"type": "integer"},
                "unread": {"type": "integer"}
            }
        },
        "handler.statusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["pending", "paid", "shipped", "delivered", "cancelled"]}}
        },
        "handler.validatePromotionRequest": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "subtotal_cents": {"type": "integer"}}
        },
        "service.RegisterInput": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string", "minLength": 8}}
        },
        "service.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "service.ProductInput": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "price_cents": {"type": "integer", "minimum": 0},
                "stock": {"type": "integer", "minimum": 0}
            }
        },
        "service.PlaceOrderItem": {
            "type": "object",
            "required": ["product_id"],
            "properties": {"product_id": {"type": "string"}, "quantity": {"type": "integer", "minimum": 1}}
        },
        "service.PlaceOrderInput": {
            "type": "object",
            "required": ["items", "shipping_address"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/service.PlaceOrderItem"}},
                "promotion_code": {"type": "string"},
                "shipping_address": {"type": "string"}
            }
        },
        "service.OrganizationInput": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}
        },
        "service.InviteInput": {
            "type": "object",
            "required": ["email", "role"],
            "properties": {"email": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "member"]}}
        },
        "service.SubscribeInput": {
            "type": "object",
            "required": ["plan"],
            "properties": {"plan": {"type": "string", "enum": ["free", "silver", "gold"]}, "months": {"type": "integer", "minimum": 1, "maximum": 24}}
        },
        "service.PromotionInput": {
            "type": "object",
            "required": ["code", "discount_type", "starts_at", "ends_at"],
            "properties": {
                "code": {"type": "string"},
                "description": {"type": "string"},
                "discount_type": {"type": "string", "enum": ["percent", "fixed"]},
                "discount_value": {"type": "integer"},
                "min_order_cents": {"type": "integer"},
                "max_uses": {"type": "integer"},
                "starts_at": {"type": "string", "format": "date-time"},
                "ends_at": {"type": "string", "format": "date-time"},
                "is_active": {"type": "boolean"}
            }
        },
        "validate.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Store Admin API",
	Description:      "E-commerce administration backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
