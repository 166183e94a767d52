package handler

import (
	"net/http"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/middleware"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type ApolicesHandler struct {
	bo  *service.Backoffice
	svc service.ApoliceService
}

func NewApolicesHandler(bo *service.Backoffice, svc service.ApoliceService) *ApolicesHandler {
	return &ApolicesHandler{bo: bo, svc: svc}
}

// Emitir POST /v1/apolices
func (h *ApolicesHandler) Emitir(c *gin.Context) {
	var req dto.EmitirApoliceRequest
	if !bindJSON(c, tentativa{h.bo, service.OpEmitirApolice, ""}, &req) {
		return
	}
	numero, err := h.bo.EmitirApolice(c.Request.Context(), middleware.Sessao(c), req.SeguroID)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.EmitirApoliceResponse{Numero: numero})
}

// Listar GET /v1/apolices
func (h *ApolicesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter GET /v1/apolices/:numero
func (h *ApolicesHandler) Obter(c *gin.Context) {
	resp, err := h.svc.ObterPorNumero(c.Request.Context(), c.Param("numero"))
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Editar PATCH /v1/apolices/:numero
func (h *ApolicesHandler) Editar(c *gin.Context) {
	var req dto.EditarApoliceRequest
	if !bindJSON(c, tentativa{h.bo, service.OpEditarApolice, c.Param("numero")}, &req) {
		return
	}
	ok, err := h.bo.EditarApolice(c.Request.Context(), middleware.Sessao(c), c.Param("numero"), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	alterado(c, ok)
}

// Cancelar POST /v1/apolices/:numero/cancelar
func (h *ApolicesHandler) Cancelar(c *gin.Context) {
	ok, err := h.bo.CancelarApolice(c.Request.Context(), middleware.Sessao(c), c.Param("numero"))
	if err != nil {
		responderErro(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New(service.ErrApoliceNaoEncontrada.Message))
		return
	}
	c.JSON(http.StatusOK, gin.H{"numero": c.Param("numero"), "status": "Cancelada"})
}

// FecharSinistros POST /v1/apolices/:numero/sinistros/fechar
func (h *ApolicesHandler) FecharSinistros(c *gin.Context) {
	ok, err := h.bo.FecharSinistros(c.Request.Context(), middleware.Sessao(c), c.Param("numero"))
	if err != nil {
		responderErro(c, err)
		return
	}
	alterado(c, ok)
}
