package handler

import (
	"net/http"
	"strconv"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Resumo GET /v1/relatorios
func (h *RelatoriosHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReceitaMensal GET /v1/relatorios/receita-mensal
func (h *RelatoriosHandler) ReceitaMensal(c *gin.Context) {
	resp, err := h.svc.ReceitaMensal(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopClientes GET /v1/relatorios/top-clientes?limit=5
func (h *RelatoriosHandler) TopClientes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := h.svc.TopClientes(c.Request.Context(), limit)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SinistrosStatus GET /v1/relatorios/sinistros-status
func (h *RelatoriosHandler) SinistrosStatus(c *gin.Context) {
	resp, err := h.svc.SinistrosPorStatus(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SinistrosPeriodo GET /v1/relatorios/sinistros-periodo?de=2024-01&ate=2024-12
func (h *RelatoriosHandler) SinistrosPeriodo(c *gin.Context) {
	var filtro dto.PeriodoFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros de consulta inválidos."))
		return
	}
	resp, err := h.svc.SinistrosPorPeriodo(c.Request.Context(), filtro)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar POST /v1/relatorios/:nome/export?formato=csv
// The period report also takes ?de=YYYY-MM&ate=YYYY-MM.
func (h *RelatoriosHandler) Exportar(c *gin.Context) {
	formato := c.DefaultQuery("formato", "csv")
	var filtro dto.PeriodoFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros de consulta inválidos."))
		return
	}
	resp, err := h.svc.Exportar(c.Request.Context(), c.Param("nome"), formato, filtro)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
