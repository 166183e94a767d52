package handler

import (
	"errors"
	"net/http"
	"strconv"

	"seguradora/internal/apierror"
	"seguradora/internal/middleware"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// tentativa names the write a request attempts so that a request refused
// before reaching the service still leaves an audit row. The zero value is
// for reads and audits nothing.
type tentativa struct {
	bo         *service.Backoffice
	op         string
	entidadeID string
}

func (h tentativa) rejeitar(c *gin.Context, campo, msg string) {
	var causa error = apierror.Invalid(campo, msg)
	err := causa
	if h.bo != nil {
		err = h.bo.Rejeitar(c.Request.Context(), middleware.Sessao(c), h.op, h.entidadeID, causa)
	}
	if !errors.Is(err, causa) {
		responderErro(c, err)
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New(msg))
}

// bindJSON binds the JSON body. Returns false and writes the error response
// if the body is malformed; the caller should return immediately.
// Field validation happens in the services so that rejected writes are
// audited like any other attempt.
func bindJSON(c *gin.Context, t tentativa, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debug().Str("request_id", c.GetString(middleware.RequestIDKey)).Err(err).Msg("invalid json body")
		t.rejeitar(c, "corpo", "JSON inválido.")
		return false
	}
	return true
}

// responderErro hands err to middleware.ErrorHandler, which writes the
// user-facing envelope and logs the technical detail.
func responderErro(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func parseID(c *gin.Context, t tentativa, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		t.entidadeID = c.Param(param)
		t.rejeitar(c, param, "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// alterado answers edits that may legitimately change nothing.
func alterado(c *gin.Context, ok bool) {
	c.JSON(http.StatusOK, gin.H{"alterado": ok})
}

// excluido answers deletions: 204 when removed, 404 when nothing matched.
func excluido(c *gin.Context, ok bool, naoEncontrado string) {
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New(naoEncontrado))
		return
	}
	c.Status(http.StatusNoContent)
}
