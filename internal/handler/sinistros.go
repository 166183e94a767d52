package handler

import (
	"net/http"

	"seguradora/internal/dto"
	"seguradora/internal/middleware"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type SinistrosHandler struct {
	bo  *service.Backoffice
	svc service.SinistroService
}

func NewSinistrosHandler(bo *service.Backoffice, svc service.SinistroService) *SinistrosHandler {
	return &SinistrosHandler{bo: bo, svc: svc}
}

// Registrar POST /v1/sinistros
func (h *SinistrosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarSinistroRequest
	if !bindJSON(c, tentativa{h.bo, service.OpRegistrarSinistro, ""}, &req) {
		return
	}
	id, err := h.bo.RegistrarSinistro(c.Request.Context(), middleware.Sessao(c), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegistrarSinistroResponse{ID: id})
}

// Listar GET /v1/sinistros
func (h *SinistrosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Editar PATCH /v1/sinistros/:id
func (h *SinistrosHandler) Editar(c *gin.Context) {
	t := tentativa{h.bo, service.OpEditarSinistro, ""}
	id, ok := parseID(c, t, "id")
	if !ok {
		return
	}
	t.entidadeID = c.Param("id")
	var req dto.EditarSinistroRequest
	if !bindJSON(c, t, &req) {
		return
	}
	changed, err := h.bo.EditarSinistro(c.Request.Context(), middleware.Sessao(c), id, req)
	if err != nil {
		responderErro(c, err)
		return
	}
	alterado(c, changed)
}
