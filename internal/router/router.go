package router

import (
	"fmt"
	"time"

	"seguradora/internal/config"
	"seguradora/internal/handler"
	"seguradora/internal/infra"
	"seguradora/internal/metrics"
	"seguradora/internal/middleware"
	"seguradora/internal/model"
	"seguradora/internal/repository"
	"seguradora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Backoffice/Service ← Repository ← DB/Redis
// rdb and m may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Metrics) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	seguroRepo := repository.NewSeguroRepository(db)
	apoliceRepo := repository.NewApoliceRepository(db)
	sinistroRepo := repository.NewSinistroRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)
	relatorioRepo := repository.NewRelatorioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, clienteRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, seguroRepo, apoliceRepo, sinistroRepo, usuarioRepo)
	seguroSvc := service.NewSeguroService(seguroRepo, clienteRepo, apoliceRepo, sinistroRepo)
	apoliceSvc := service.NewApoliceService(apoliceRepo, seguroRepo)
	sinistroSvc := service.NewSinistroService(sinistroRepo, apoliceRepo)
	auditoriaSvc := service.NewAuditoriaService(auditoriaRepo)

	relatorioOpts := service.RelatorioOptions{
		CacheTTL:    time.Duration(cfg.ReportCacheTTLSeconds) * time.Second,
		ExportDir:   cfg.ExportDir,
		TopClientes: cfg.TopClientsLimit,
		Metrics:     m,
	}
	var cacheState func() string
	if rdb != nil {
		cache := infra.NewRedisCache(rdb, "seguradora:relatorios:", infra.NewCircuitBreaker(infra.DefaultCBConfig()))
		relatorioOpts.Cache = cache
		cacheState = func() string { return cache.State().String() }
	}
	relatorioSvc := service.NewRelatorioService(relatorioRepo, relatorioOpts)

	autorizador, err := service.NewAutorizador()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	bo := service.NewBackoffice(service.BackofficeDeps{
		Clientes:    clienteSvc,
		Seguros:     seguroSvc,
		Apolices:    apoliceSvc,
		Sinistros:   sinistroSvc,
		Auth:        authSvc,
		Autorizador: autorizador,
		Auditoria:   auditoriaSvc,
		Relatorios:  relatorioSvc,
		Metrics:     m,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(bo)
	usuariosH := handler.NewUsuariosHandler(bo, authSvc)
	clientesH := handler.NewClientesHandler(bo, clienteSvc)
	segurosH := handler.NewSegurosHandler(bo, seguroSvc)
	apolicesH := handler.NewApolicesHandler(bo, apoliceSvc)
	sinistrosH := handler.NewSinistrosHandler(bo, sinistroSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)
	auditoriaH := handler.NewAuditoriaHandler(auditoriaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, cacheState))
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Auth (public)
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes. Write permission is decided by the Backoffice for
	// every mutating call so that denials are audited too.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/eu", authH.Eu)

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", clientesH.Listar)
			clientes.POST("", clientesH.Cadastrar)
			clientes.GET("/:cpf", clientesH.Obter)
			clientes.PATCH("/:cpf/contato", clientesH.AtualizarContato)
			clientes.DELETE("/:cpf", clientesH.Excluir)
		}

		seguros := v1.Group("/seguros")
		{
			seguros.GET("", segurosH.Listar)
			seguros.POST("", segurosH.Criar)
			seguros.GET("/:id", segurosH.Obter)
			seguros.PATCH("/:id", segurosH.Atualizar)
			seguros.DELETE("/:id", segurosH.Excluir)
		}

		apolices := v1.Group("/apolices")
		{
			apolices.GET("", apolicesH.Listar)
			apolices.POST("", apolicesH.Emitir)
			apolices.GET("/:numero", apolicesH.Obter)
			apolices.PATCH("/:numero", apolicesH.Editar)
			apolices.POST("/:numero/cancelar", apolicesH.Cancelar)
			apolices.POST("/:numero/sinistros/fechar", apolicesH.FecharSinistros)
		}

		sinistros := v1.Group("/sinistros")
		{
			sinistros.GET("", sinistrosH.Listar)
			sinistros.POST("", sinistrosH.Registrar)
			sinistros.PATCH("/:id", sinistrosH.Editar)
		}

		usuarios := v1.Group("/usuarios")
		{
			usuarios.GET("", middleware.RequirePerfil(model.PerfilAdmin), usuariosH.Listar)
			usuarios.POST("", usuariosH.Criar)
			usuarios.PATCH("/:username", usuariosH.Editar)
			usuarios.DELETE("/:username", usuariosH.Excluir)
		}

		relatorios := v1.Group("/relatorios")
		{
			relatorios.GET("", relatoriosH.Resumo)
			relatorios.GET("/receita-mensal", relatoriosH.ReceitaMensal)
			relatorios.GET("/top-clientes", relatoriosH.TopClientes)
			relatorios.GET("/sinistros-status", relatoriosH.SinistrosStatus)
			relatorios.GET("/sinistros-periodo", relatoriosH.SinistrosPeriodo)
			relatorios.POST("/:nome/export", relatoriosH.Exportar)
		}

		v1.GET("/auditoria", middleware.RequirePerfil(model.PerfilAdmin), auditoriaH.Listar)
	}

	return r, nil
}
