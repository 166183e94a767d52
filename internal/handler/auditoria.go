package handler

import (
	"net/http"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditoriaHandler struct{ svc service.AuditoriaService }

func NewAuditoriaHandler(svc service.AuditoriaService) *AuditoriaHandler {
	return &AuditoriaHandler{svc: svc}
}

// Listar GET /v1/auditoria?usuario=&entidade=&limit=
func (h *AuditoriaHandler) Listar(c *gin.Context) {
	var filtro dto.FiltroAuditoria
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros de consulta inválidos."))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
