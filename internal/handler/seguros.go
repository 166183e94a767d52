package handler

import (
	"net/http"

	"seguradora/internal/dto"
	"seguradora/internal/middleware"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type SegurosHandler struct {
	bo  *service.Backoffice
	svc service.SeguroService
}

func NewSegurosHandler(bo *service.Backoffice, svc service.SeguroService) *SegurosHandler {
	return &SegurosHandler{bo: bo, svc: svc}
}

// Criar POST /v1/seguros
func (h *SegurosHandler) Criar(c *gin.Context) {
	var req dto.CriarSeguroRequest
	if !bindJSON(c, tentativa{h.bo, service.OpCriarSeguro, ""}, &req) {
		return
	}
	resp, err := h.bo.CriarSeguro(c.Request.Context(), middleware.Sessao(c), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/seguros
func (h *SegurosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter GET /v1/seguros/:id
func (h *SegurosHandler) Obter(c *gin.Context) {
	id, ok := parseID(c, tentativa{}, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar PATCH /v1/seguros/:id
func (h *SegurosHandler) Atualizar(c *gin.Context) {
	t := tentativa{h.bo, service.OpAtualizarSeguro, ""}
	id, ok := parseID(c, t, "id")
	if !ok {
		return
	}
	t.entidadeID = c.Param("id")
	var req dto.AtualizarSeguroRequest
	if !bindJSON(c, t, &req) {
		return
	}
	changed, err := h.bo.AtualizarSeguro(c.Request.Context(), middleware.Sessao(c), id, req)
	if err != nil {
		responderErro(c, err)
		return
	}
	alterado(c, changed)
}

// Excluir DELETE /v1/seguros/:id
func (h *SegurosHandler) Excluir(c *gin.Context) {
	id, ok := parseID(c, tentativa{h.bo, service.OpExcluirSeguro, ""}, "id")
	if !ok {
		return
	}
	removed, err := h.bo.ExcluirSeguro(c.Request.Context(), middleware.Sessao(c), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	excluido(c, removed, service.ErrSeguroNaoEncontrado.Message)
}
