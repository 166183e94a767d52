package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seguradora/internal/config"
	"seguradora/internal/dto"
	"seguradora/internal/infra"
	"seguradora/internal/metrics"
	"seguradora/internal/model"
	"seguradora/internal/repository"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Test server ──────────────────────────────────────────────────────────────

type servidor struct {
	t      *testing.T
	engine *gin.Engine
}

func novoServidor(t *testing.T) *servidor {
	t.Helper()
	db, err := infra.NewDatabase(infra.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db, ""))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	usuarios := repository.NewUsuarioRepository(db)
	for _, u := range []struct{ nome, perfil string }{{"admin", model.PerfilAdmin}, {"maria", model.PerfilComum}} {
		hash, err := service.HashPassword("senha123", 4)
		require.NoError(t, err)
		require.NoError(t, usuarios.Create(context.Background(), &model.Usuario{
			Username: u.nome, PasswordHash: hash, Perfil: u.perfil, Ativo: true,
		}))
	}

	cfg := &config.Config{
		JWTSecret:          "segredo-de-teste-com-32-caracteres!",
		JWTExpirationHours: 1,
		BcryptCost:         4,
		ExportDir:          t.TempDir(),
		TopClientsLimit:    5,
	}
	engine, err := New(cfg, db, nil, metrics.New())
	require.NoError(t, err)
	return &servidor{t: t, engine: engine}
}

func (s *servidor) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *servidor) login(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"username": username, "senha": "senha123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestHealthEMetrics(t *testing.T) {
	s := novoServidor(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	s := novoServidor(t)

	w := s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Usuário ou senha inválidos.", decode[map[string]any](t, w)["detail"])

	w = s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "", "senha": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	token := s.login("admin")
	w = s.do(http.MethodGet, "/v1/auth/eu", token, nil)
	assert.JSONEq(t, `{"username":"admin","perfil":"admin"}`, w.Body.String())

	w = s.do(http.MethodGet, "/v1/clientes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFluxoApolice(t *testing.T) {
	s := novoServidor(t)
	admin := s.login("admin")

	w := s.do(http.MethodPost, "/v1/clientes", admin, map[string]any{
		"nome": "Ana", "cpf": "529.982.247-25", "data_nascimento": "01/02/1990",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/seguros", admin, map[string]any{
		"tipo": "Automóvel", "cliente_cpf": "52998224725", "valor_base": "50000",
		"modelo": "Onix", "ano": 2020, "placa": "ABC1D23",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	seguro := decode[map[string]any](t, w)

	w = s.do(http.MethodPost, "/v1/apolices", admin, map[string]any{"seguro_id": seguro["id"]})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"numero":"00001"}`, w.Body.String())

	w = s.do(http.MethodGet, "/v1/apolices/00001", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1500", decode[map[string]any](t, w)["valor_mensal"])

	w = s.do(http.MethodPost, "/v1/sinistros", admin, map[string]any{
		"numero_apolice": "00001", "descricao": "Colisão", "data_ocorrencia": "31/02/2024",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/v1/apolices/00001/cancelar", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/v1/apolices/00001/cancelar", admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Apólice já está cancelada.", decode[map[string]any](t, w)["detail"])

	w = s.do(http.MethodDelete, "/v1/clientes/52998224725", admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(http.MethodDelete, "/v1/clientes/52998224725?forcar=true", admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/v1/auditoria", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entradas := decode[[]map[string]any](t, w)
	assert.Len(t, entradas, 9, "login + 8 audited operations")
}

func TestRequisicaoInvalidaAuditada(t *testing.T) {
	s := novoServidor(t)
	admin := s.login("admin")
	maria := s.login("maria")

	w := s.do(http.MethodPost, "/v1/apolices", admin, "não é um objeto")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "JSON inválido.", decode[map[string]any](t, w)["detail"])

	w = s.do(http.MethodPatch, "/v1/sinistros/abc", admin, map[string]any{"descricao": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID inválido.", decode[map[string]any](t, w)["detail"])

	// Authorization still comes first.
	w = s.do(http.MethodDelete, "/v1/seguros/abc", maria, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Reads audit nothing.
	w = s.do(http.MethodGet, "/v1/seguros/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/auditoria", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entradas := decode[[]dto.AuditoriaResponse](t, w)
	require.Len(t, entradas, 5, "two logins + three rejected writes")

	porOperacao := map[string]dto.AuditoriaResponse{}
	for _, e := range entradas {
		porOperacao[e.Operacao] = e
	}
	emitir := porOperacao[service.OpEmitirApolice]
	assert.False(t, emitir.Sucesso)
	require.NotNil(t, emitir.Detalhe)
	assert.Equal(t, "JSON inválido.", *emitir.Detalhe)

	editar := porOperacao[service.OpEditarSinistro]
	require.NotNil(t, editar.EntidadeID)
	assert.Equal(t, "abc", *editar.EntidadeID)

	excluir := porOperacao[service.OpExcluirSeguro]
	assert.Equal(t, "maria", excluir.Usuario)
	require.NotNil(t, excluir.Detalhe)
	assert.Equal(t, "Operação não permitida para o seu perfil.", *excluir.Detalhe)
}

func TestPerfilComum(t *testing.T) {
	s := novoServidor(t)
	maria := s.login("maria")

	w := s.do(http.MethodGet, "/v1/clientes", maria, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/clientes", maria, map[string]any{
		"nome": "Ana", "cpf": "529.982.247-25", "data_nascimento": "01/02/1990",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Operação não permitida para o seu perfil.", decode[map[string]any](t, w)["detail"])

	w = s.do(http.MethodGet, "/v1/auditoria", maria, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRelatoriosExport(t *testing.T) {
	s := novoServidor(t)
	admin := s.login("admin")

	w := s.do(http.MethodGet, "/v1/relatorios", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/relatorios/receita-mensal/export?formato=xlsx", admin, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, strings.HasSuffix(decode[map[string]string](t, w)["arquivo"], ".xlsx"))

	w = s.do(http.MethodGet, "/v1/relatorios/sinistros-periodo?de=2024-13&ate=2024-12", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/v1/relatorios/sinistros-periodo/export?formato=json&de=2024-01&ate=2024-12", admin, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, strings.HasSuffix(decode[map[string]string](t, w)["arquivo"], ".json"))

	w = s.do(http.MethodPost, "/v1/relatorios/sinistros-periodo/export?formato=csv", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
