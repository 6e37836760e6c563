package handlers

import "net/http"

// Спецификация поддерживается вручную: поверхность API маленькая и стабильная,
// кодогенерация здесь не окупается.
const openAPIDoc = `{
  "openapi": "3.0.3",
  "info": {
    "title": "tournament-aggregator",
    "description": "Capa de agregación de brackets sobre matches-service y teams-service.",
    "version": "1.0.0"
  },
  "paths": {
    "/health": {
      "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
    },
    "/api/tournaments": {
      "get": {
        "summary": "Lista de torneos (siempre uno)",
        "parameters": [{"name": "refresh", "in": "query", "schema": {"type": "boolean"}}],
        "responses": {"200": {"description": "Resumen del torneo"}, "502": {"description": "Servicio remoto no disponible"}}
      }
    },
    "/api/tournaments/{tournamentID}": {
      "get": {
        "summary": "Detalle compuesto del torneo",
        "parameters": [
          {"name": "tournamentID", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "refresh", "in": "query", "schema": {"type": "boolean"}}
        ],
        "responses": {"200": {"description": "Detalle"}, "404": {"description": "Torneo no encontrado"}}
      }
    },
    "/api/tournaments/{tournamentID}/groups/{groupID}/slots/{slotIndex}": {
      "put": {
        "summary": "Asigna o limpia un slot del grupo",
        "parameters": [
          {"name": "tournamentID", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "groupID", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "slotIndex", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "requestBody": {
          "content": {"application/json": {"schema": {"type": "object", "properties": {"matchId": {"type": "integer", "nullable": true}}}}}
        },
        "responses": {"200": {"description": "Detalle actualizado"}, "400": {"description": "Asignación inválida"}}
      }
    },
    "/api/tournaments/{tournamentID}/matches/{matchID}": {
      "patch": {
        "summary": "Reporta un cambio de estado de un partido",
        "parameters": [
          {"name": "tournamentID", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "matchID", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "requestBody": {
          "content": {"application/json": {"schema": {"type": "object", "properties": {"status": {"type": "string"}, "scoreA": {"type": "integer"}, "scoreB": {"type": "integer"}}}}}
        },
        "responses": {"200": {"description": "Detalle actualizado"}, "400": {"description": "Identificador inválido"}}
      }
    }
  }
}`

// SwaggerDocHandler отдаёт OpenAPI-документ для swagger UI.
func SwaggerDocHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(openAPIDoc))
}
