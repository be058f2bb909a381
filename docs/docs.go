// Package docs holds the OpenAPI description served at /swagger
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
        "/availability": {
            "get": {
                "tags": ["availability"],
                "summary": "Booked and blocked dates",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/availability/day/{date}": {
            "get": {
                "tags": ["availability"],
                "summary": "One day's state and the price of every tier",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"type": "integer", "name": "tier", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/availability/calendar": {
            "get": {
                "tags": ["availability"],
                "summary": "One month of day states with prices for a tier",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "tier", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pricing": {
            "get": {
                "tags": ["pricing"],
                "summary": "Price of one night for a tier",
                "parameters": [
                    {"type": "string", "name": "tier", "in": "query"},
                    {"type": "string", "name": "date", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/bookings": {
            "post": {
                "tags": ["bookings"],
                "summary": "Request a booking",
                "consumes": ["application/json"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/bookings/submit": {
            "post": {
                "tags": ["bookings"],
                "summary": "Full visitor flow: identity upload, advance payment info, booking",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "file", "name": "identity", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "202": {"description": "stored in the fallback queue"}
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "List bookings, newest first",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/bookings/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Approve or reject a booking",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "transition not allowed"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Delete a booking and free the days nothing else holds",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/availability/booked": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["availability"],
                "summary": "Remove booked days, keeping those an approved booking covers unless forced",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "every day is still held"}
                }
            }
        },
        "/admin/export/{collection}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Download a collection as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"type": "string", "name": "collection", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin sign-in with username and password",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/payments/order": {
            "post": {
                "tags": ["payments"],
                "summary": "Open a gateway order for the advance",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/payments/verify": {
            "post": {
                "tags": ["payments"],
                "summary": "Check the gateway signature and mark the order paid",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/uploads/identity": {
            "post": {
                "tags": ["uploads"],
                "summary": "Store an identity document. A failed upload yields a placeholder id.",
                "consumes": ["multipart/form-data"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/reviews": {
            "post": {
                "tags": ["reviews"],
                "summary": "Leave a review; it waits for moderation",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/leads": {
            "post": {
                "tags": ["leads"],
                "summary": "Page-visit beacon. Always answers 204.",
                "responses": {"204": {"description": "No Content"}}
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
	Title:            "Guesthouse booking API",
	Description:      "Availability, pricing and booking lifecycle for a single property.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
