package internal

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/auth"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/database"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/handlers/input"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/report"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/strategy/dmr"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/config"
)

const (
	maxBodyBytes = 1 << 20
	pingTimeout  = 2 * time.Second
)

// RunStore is the part of the run journal the API needs.
type RunStore interface {
	LogRun(ctx context.Context, run database.Run) error
	RecentRuns(ctx context.Context, limit int) ([]database.Run, error)
	Ping(ctx context.Context) error
}

type API struct {
	Logger     zerolog.Logger
	Config     *config.Config
	Engine     *dmr.Engine
	Journal    RunStore // nil when the journal is disabled
	JWTManager *auth.JWTManager
}

// NewAPI wires the handlers. journal may be nil.
func NewAPI(logger zerolog.Logger, cfg *config.Config, journal RunStore) *API {
	api := &API{
		Logger:  logger,
		Config:  cfg,
		Engine:  dmr.NewEngine(dmr.PlaceholderFactors),
		Journal: journal,
	}
	if cfg.Auth.Enabled {
		api.JWTManager = auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.Issuer)
	}
	return api
}

// Routes builds the router with the full middleware stack.
func (api *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(api.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CorsMiddleware)

	r.Get("/health", api.HandleHealth)

	// HTML pages
	r.Get("/", api.HandleForm)
	r.Post("/run-dmr", api.HandleRunDMR)

	r.Group(func(r chi.Router) {
		if api.JWTManager != nil {
			r.Use(JWTAuthMiddleware(api.JWTManager))
		}
		r.Post("/api/dmr", api.HandleComputeDMR)
		r.Get("/api/runs", api.HandleRecentRuns)
	})

	return r
}

// review runs the engine and journals the result. Journal failures are
// logged and never fail the request.
func (api *API) review(r *http.Request, in types.EngineInput) report.Review {
	logger := hlog.FromRequest(r)
	res := api.Engine.Run(in)
	run := database.NewRun(in, res.Output)
	rev := report.NewReview(run.ID.String(), in, res)

	event := logger.Debug()
	if rev.Warning != "" {
		event = logger.Warn().Str("warning", rev.Warning)
	}
	event.Str("run_id", rev.RunID).
		Bool("fallback", res.FallbackUsed).
		Float64("min_gap", res.MinGap).
		Msg("review computed")

	if api.Journal != nil {
		if err := api.Journal.LogRun(r.Context(), run); err != nil {
			logger.Error().Err(err).Str("run_id", rev.RunID).Msg("failed to journal run")
		}
	}
	return rev
}

// HandleHealth reports unhealthy while an enabled journal cannot reach its database.
func (api *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if api.Journal != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := api.Journal.Ping(ctx); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("journal health check failed")
			WriteError(w, http.StatusServiceUnavailable, "journal database unreachable")
			return
		}
	}
	WriteJSON(w, http.StatusOK, "healthy")
}

func (api *API) HandleForm(w http.ResponseWriter, r *http.Request) {
	api.renderForm(w, r, http.StatusOK, report.FormPage{})
}

func (api *API) HandleRunDMR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		api.renderForm(w, r, http.StatusBadRequest, report.FormPage{})
		return
	}

	in, err := input.FromForm(r.PostForm)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("rejected form")
		api.renderForm(w, r, http.StatusBadRequest, report.NewFormPage(r.PostForm, err))
		return
	}

	rev := api.review(r, in)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderResult(w, rev); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to render result page")
	}
}

func (api *API) renderForm(w http.ResponseWriter, r *http.Request, status int, page report.FormPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := report.RenderForm(w, page); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to render form")
	}
}

type computeResponse struct {
	RunID        string             `json:"run_id"`
	Output       types.EngineOutput `json:"output"`
	YAML         string             `json:"yaml"`
	FallbackUsed bool               `json:"fallback_used"`
	Warning      string             `json:"warning,omitempty"`
}

func (api *API) HandleComputeDMR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	in, err := input.FromJSON(r.Body)
	if err != nil {
		var errs input.Errors
		if errors.As(err, &errs) {
			WriteInputError(w, errs)
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rev := api.review(r, in)
	block, err := rev.YAML()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to render yaml block")
		WriteError(w, http.StatusInternalServerError, "Failed to render review")
		return
	}

	WriteJSON(w, http.StatusOK, computeResponse{
		RunID:        rev.RunID,
		Output:       rev.Output,
		YAML:         block,
		FallbackUsed: rev.FallbackUsed,
		Warning:      rev.Warning,
	})
}

func (api *API) HandleRecentRuns(w http.ResponseWriter, r *http.Request) {
	if api.Journal == nil {
		WriteError(w, http.StatusServiceUnavailable, "Run journal is disabled")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := api.Journal.RecentRuns(r.Context(), database.ClampLimit(limit, api.Config.Journal.RecentLimit))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to fetch runs")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch runs")
		return
	}

	WriteJSON(w, http.StatusOK, runs)
}
