// Package docs registra la descripción OpenAPI de la API en swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión"}},
        "/api/auth/logout": {"post": {"tags": ["auth"], "summary": "Cerrar sesión", "security": [{"Bearer": []}]}},
        "/api/auth/session": {"get": {"tags": ["auth"], "summary": "Sesión actual", "security": [{"Bearer": []}]}},
        "/api/products": {
            "get": {"tags": ["products"], "summary": "Listar productos", "security": [{"Bearer": []}]},
            "post": {"tags": ["products"], "summary": "Crear producto", "security": [{"Bearer": []}]}
        },
        "/api/products/suggest": {"get": {"tags": ["products"], "summary": "Sugerencias de búsqueda", "security": [{"Bearer": []}]}},
        "/api/products/{id}": {
            "get": {"tags": ["products"], "summary": "Obtener producto por ID", "security": [{"Bearer": []}]},
            "put": {"tags": ["products"], "summary": "Actualizar producto", "security": [{"Bearer": []}]},
            "delete": {"tags": ["products"], "summary": "Eliminar producto", "security": [{"Bearer": []}]}
        },
        "/api/products/{id}/movements": {"get": {"tags": ["products"], "summary": "Últimos movimientos de un producto", "security": [{"Bearer": []}]}},
        "/api/movements": {"post": {"tags": ["movements"], "summary": "Registrar entrada o salida", "security": [{"Bearer": []}]}},
        "/api/history": {"get": {"tags": ["history"], "summary": "Historial de movimientos", "security": [{"Bearer": []}]}},
        "/api/history/metrics": {"get": {"tags": ["history"], "summary": "Métricas del historial", "security": [{"Bearer": []}]}},
        "/api/history/export": {"get": {"tags": ["history"], "summary": "Exportar historial a Excel", "security": [{"Bearer": []}]}},
        "/api/dashboard": {"get": {"tags": ["dashboard"], "summary": "Resumen del inventario", "security": [{"Bearer": []}]}},
        "/api/notifications": {"get": {"tags": ["notifications"], "summary": "Alertas de stock", "security": [{"Bearer": []}]}},
        "/api/notifications/{id}/read": {"post": {"tags": ["notifications"], "summary": "Marcar alerta como leída", "security": [{"Bearer": []}]}},
        "/api/notifications/read-all": {"post": {"tags": ["notifications"], "summary": "Marcar todas las alertas como leídas", "security": [{"Bearer": []}]}},
        "/api/reports/stock.pdf": {"get": {"tags": ["reports"], "summary": "Reporte de stock en PDF", "security": [{"Bearer": []}]}},
        "/api/profile": {
            "get": {"tags": ["profile"], "summary": "Ver perfil", "security": [{"Bearer": []}]},
            "put": {"tags": ["profile"], "summary": "Actualizar perfil", "security": [{"Bearer": []}]}
        },
        "/api/users": {
            "get": {"tags": ["users"], "summary": "Listar usuarios", "security": [{"Bearer": []}]},
            "post": {"tags": ["users"], "summary": "Crear usuario", "security": [{"Bearer": []}]}
        },
        "/api/users/{id}": {"put": {"tags": ["users"], "summary": "Actualizar rol y nombre", "security": [{"Bearer": []}]}},
        "/api/users/{id}/active": {"put": {"tags": ["users"], "summary": "Activar o desactivar cuenta", "security": [{"Bearer": []}]}},
        "/api/users/{id}/reset-password": {"post": {"tags": ["users"], "summary": "Restablecer contraseña", "security": [{"Bearer": []}]}}
    }
}`

// SwaggerInfo metadatos exportados para ajustar host y versión en tiempo de ejecución.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lumina Inventario API",
	Description:      "Catálogo de productos, entradas y salidas, historial y usuarios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
