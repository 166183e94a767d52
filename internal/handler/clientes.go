package handler

import (
	"net/http"

	"seguradora/internal/dto"
	"seguradora/internal/middleware"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct {
	bo  *service.Backoffice
	svc service.ClienteService
}

func NewClientesHandler(bo *service.Backoffice, svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{bo: bo, svc: svc}
}

// Cadastrar POST /v1/clientes
func (h *ClientesHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarClienteRequest
	if !bindJSON(c, tentativa{h.bo, service.OpCadastrarCliente, ""}, &req) {
		return
	}
	resp, err := h.bo.CadastrarCliente(c.Request.Context(), middleware.Sessao(c), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/clientes
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter GET /v1/clientes/:cpf
func (h *ClientesHandler) Obter(c *gin.Context) {
	resp, err := h.svc.ObterPorCPF(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarContato PATCH /v1/clientes/:cpf/contato
func (h *ClientesHandler) AtualizarContato(c *gin.Context) {
	var req dto.AtualizarContatoRequest
	if !bindJSON(c, tentativa{h.bo, service.OpAtualizarContato, c.Param("cpf")}, &req) {
		return
	}
	ok, err := h.bo.AtualizarContatoCliente(c.Request.Context(), middleware.Sessao(c), c.Param("cpf"), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	alterado(c, ok)
}

// Excluir DELETE /v1/clientes/:cpf?forcar=true
func (h *ClientesHandler) Excluir(c *gin.Context) {
	forcar := c.Query("forcar") == "true"
	ok, err := h.bo.ExcluirCliente(c.Request.Context(), middleware.Sessao(c), c.Param("cpf"), forcar)
	if err != nil {
		responderErro(c, err)
		return
	}
	excluido(c, ok, service.ErrClienteNaoEncontrado.Message)
}
