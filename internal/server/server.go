package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/lancerkit/lancer/internal/ai"
	"github.com/lancerkit/lancer/internal/audit"
	auditdomain "github.com/lancerkit/lancer/internal/audit/domain"
	"github.com/lancerkit/lancer/internal/auth/session"
	"github.com/lancerkit/lancer/internal/cache"
	"github.com/lancerkit/lancer/internal/client"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/internal/clock"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/lead"
	leaddomain "github.com/lancerkit/lancer/internal/lead/domain"
	"github.com/lancerkit/lancer/internal/observability"
	obsmiddleware "github.com/lancerkit/lancer/internal/observability/logger"
	obsmetrics "github.com/lancerkit/lancer/internal/observability/metrics"
	obstracing "github.com/lancerkit/lancer/internal/observability/tracing"
	"github.com/lancerkit/lancer/internal/project"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	"github.com/lancerkit/lancer/internal/proposal"
	proposaldomain "github.com/lancerkit/lancer/internal/proposal/domain"
	"github.com/lancerkit/lancer/internal/providers"
	"github.com/lancerkit/lancer/internal/quote"
	quotedomain "github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	session.Module,
	cache.Module,
	ratelimit.Module,
	audit.Module,
	providers.Module,
	ai.Module,
	client.Module,
	lead.Module,
	project.Module,
	quote.Module,
	proposal.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error", payload.Type
	case status >= http.StatusBadRequest:
		return "client_error", payload.Type
	default:
		return "", payload.Type
	}
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	sessions    *session.Manager
	auditSvc    auditdomain.Service
	clientSvc   clientdomain.Service
	leadSvc     leaddomain.Service
	projectSvc  projectdomain.Service
	quoteSvc    quotedomain.Service
	proposalSvc proposaldomain.Service
	aiSvc       ai.Service
}

type ServerParams struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Sessions    *session.Manager
	AuditSvc    auditdomain.Service
	ClientSvc   clientdomain.Service
	LeadSvc     leaddomain.Service
	ProjectSvc  projectdomain.Service
	QuoteSvc    quotedomain.Service
	ProposalSvc proposaldomain.Service
	AISvc       ai.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		genID:       p.GenID,
		clock:       p.Clock,
		sessions:    p.Sessions,
		auditSvc:    p.AuditSvc,
		clientSvc:   p.ClientSvc,
		leadSvc:     p.LeadSvc,
		projectSvc:  p.ProjectSvc,
		quoteSvc:    p.QuoteSvc,
		proposalSvc: p.ProposalSvc,
		aiSvc:       p.AISvc,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.POST("/auth/logout", s.Logout)
	if s.cfg.Environment != "production" {
		s.engine.POST("/auth/dev-login", s.DevLogin)
	}

	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)

	api.GET("/leads", s.ListLeads)
	api.POST("/leads", s.CreateLead)
	api.GET("/leads/:id", s.GetLeadByID)
	api.PATCH("/leads/:id", s.UpdateLead)
	api.POST("/leads/:id/convert", s.ConvertLead)
	api.POST("/leads/:id/proposal", s.GenerateProposal)

	api.GET("/projects", s.ListProjects)
	api.POST("/projects", s.CreateProject)
	api.GET("/projects/:id", s.GetProjectByID)

	api.GET("/projects/:id/tasks", s.ListProjectTasks)
	api.POST("/projects/:id/tasks", s.CreateProjectTask)
	api.PATCH("/projects/:id/tasks/:taskId", s.UpdateProjectTask)
	api.DELETE("/projects/:id/tasks/:taskId", s.DeleteProjectTask)

	api.GET("/projects/:id/milestones", s.ListProjectMilestones)
	api.POST("/projects/:id/milestones", s.CreateProjectMilestone)
	api.PATCH("/projects/:id/milestones/:milestoneId", s.UpdateProjectMilestone)

	api.GET("/projects/:id/notes", s.ListProjectNotes)
	api.POST("/projects/:id/notes", s.CreateProjectNote)
	api.DELETE("/projects/:id/notes/:noteId", s.DeleteProjectNote)

	api.GET("/quotes", s.ListQuotes)
	api.POST("/quotes", s.CreateQuote)
	api.GET("/quotes/:id", s.GetQuoteByID)
	api.PATCH("/quotes/:id", s.UpdateQuote)

	api.GET("/proposals/:id", s.GetProposalByID)
	api.GET("/proposals/:id/download", s.DownloadProposal)
	api.POST("/proposals/:id/send", s.SendProposal)

	aiGroup := api.Group("/ai")
	aiGroup.POST("/generate-proposal/:leadId", s.AIGenerateProposal)
	aiGroup.POST("/generate-followup/:leadId", s.AIGenerateFollowUp)
	aiGroup.POST("/enrich-lead/:leadId", s.AIEnrichLead)
	aiGroup.GET("/suggest-actions/:type/:id", s.AISuggestActions)
	aiGroup.POST("/summarize", s.AISummarize)
	aiGroup.POST("/generate-social-content", s.AIGenerateSocialContent)
	aiGroup.POST("/generate-payment-reminder/:invoiceId", s.AIGeneratePaymentReminder)
	aiGroup.GET("/health", s.AIHealth)
}
