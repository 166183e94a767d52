package handler

import (
	"net/http"

	"seguradora/internal/dto"
	"seguradora/internal/middleware"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ bo *service.Backoffice }

func NewAuthHandler(bo *service.Backoffice) *AuthHandler { return &AuthHandler{bo: bo} }

// Login POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, tentativa{h.bo, service.OpLogin, ""}, &req) {
		return
	}
	resp, err := h.bo.Login(c.Request.Context(), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eu GET /v1/auth/eu
func (h *AuthHandler) Eu(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Sessao(c))
}

// ── Usuarios Handler ─────────────────────────────────────────────────────────

type UsuariosHandler struct {
	bo  *service.Backoffice
	svc service.AuthService
}

func NewUsuariosHandler(bo *service.Backoffice, svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{bo: bo, svc: svc}
}

// Criar POST /v1/usuarios
func (h *UsuariosHandler) Criar(c *gin.Context) {
	var req dto.CriarUsuarioRequest
	if !bindJSON(c, tentativa{h.bo, service.OpCriarUsuario, ""}, &req) {
		return
	}
	if _, err := h.bo.CriarUsuario(c.Request.Context(), middleware.Sessao(c), req); err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

// Listar GET /v1/usuarios
func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Editar PATCH /v1/usuarios/:username
func (h *UsuariosHandler) Editar(c *gin.Context) {
	var req dto.EditarUsuarioRequest
	if !bindJSON(c, tentativa{h.bo, service.OpEditarUsuario, c.Param("username")}, &req) {
		return
	}
	ok, err := h.bo.EditarUsuario(c.Request.Context(), middleware.Sessao(c), c.Param("username"), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	alterado(c, ok)
}

// Excluir DELETE /v1/usuarios/:username
func (h *UsuariosHandler) Excluir(c *gin.Context) {
	ok, err := h.bo.ExcluirUsuario(c.Request.Context(), middleware.Sessao(c), c.Param("username"))
	if err != nil {
		responderErro(c, err)
		return
	}
	excluido(c, ok, "Usuário não encontrado.")
}
