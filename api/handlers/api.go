package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/api/scheduler"
	"github.com/linesmerrill/efiling-api/config"
	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/notify"
	"github.com/linesmerrill/efiling-api/services"
	"github.com/linesmerrill/efiling-api/storage"
)

// requestTimeout bounds every non websocket request
const requestTimeout = 30 * time.Second

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	client    databases.ClientHelper
	dbHelper  databases.DatabaseHelper
}

// Dependencies are the collaborators the routes are built from
type Dependencies struct {
	Directory *services.Directory
	Cases     *services.Cases
	Hearings  *services.Hearings
	Analytics *services.Analytics
	Store     storage.DocumentStore
	Hub       *notify.Hub
	Guardian  *api.Guardian
}

// NewRouter creates a new mux router and all the routes
func NewRouter(d Dependencies) *mux.Router {
	a := Auth{Directory: d.Directory, Guardian: d.Guardian}
	u := User{Directory: d.Directory}
	c := EFiledCase{Cases: d.Cases, Store: d.Store}
	h := Hearing{Hearings: d.Hearings}
	stats := Analytics{Analytics: d.Analytics}
	n := Notifications{Hub: d.Hub}
	protected := d.Guardian.Middleware

	// healthchex and access logging
	r := api.New()

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(requestTimeout))

	apiCreate.HandleFunc("/auth/register", a.RegisterHandler).Methods("POST")
	apiCreate.HandleFunc("/auth/login", a.LoginHandler).Methods("POST")
	apiCreate.Handle("/auth/token", protected(http.HandlerFunc(a.TokenHandler))).Methods("POST")
	apiCreate.Handle("/auth/logout", protected(http.HandlerFunc(a.LogoutHandler))).Methods("DELETE")

	apiCreate.Handle("/users", protected(http.HandlerFunc(u.UsersHandler))).Methods("GET")
	apiCreate.Handle("/users/{user_id}", protected(http.HandlerFunc(u.DeleteUserHandler))).Methods("DELETE")
	apiCreate.Handle("/me", protected(http.HandlerFunc(u.MeHandler))).Methods("GET")

	apiCreate.Handle("/efiled-cases", protected(http.HandlerFunc(c.CreateEFiledCaseHandler))).Methods("POST")
	apiCreate.Handle("/efiled-cases", protected(http.HandlerFunc(c.EFiledCasesHandler))).Methods("GET")
	apiCreate.Handle("/efiled-cases/{case_id}", protected(http.HandlerFunc(c.EFiledCaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/efiled-cases/{case_id}", protected(http.HandlerFunc(c.UpdateEFiledCaseHandler))).Methods("PUT")
	apiCreate.Handle("/efiled-cases/{case_id}/status", protected(http.HandlerFunc(c.UpdateEFiledCaseStatusHandler))).Methods("PUT")
	apiCreate.Handle("/efiled-cases/{case_id}/judge", protected(http.HandlerFunc(c.AssignJudgeHandler))).Methods("PUT")
	apiCreate.Handle("/efiled-cases/{case_id}/documents", protected(http.HandlerFunc(c.AddDocumentHandler))).Methods("POST")
	apiCreate.Handle("/efiled-cases/{case_id}/documents/upload", protected(http.HandlerFunc(c.UploadDocumentHandler))).Methods("POST")

	apiCreate.Handle("/efiled-cases/{case_id}/hearings", protected(http.HandlerFunc(h.ScheduleHearingHandler))).Methods("POST")
	apiCreate.Handle("/efiled-cases/{case_id}/hearings", protected(http.HandlerFunc(h.CaseHearingsHandler))).Methods("GET")
	apiCreate.Handle("/hearings", protected(http.HandlerFunc(h.HearingsHandler))).Methods("GET")
	apiCreate.Handle("/hearings/{hearing_id}", protected(http.HandlerFunc(h.HearingByIDHandler))).Methods("GET")
	apiCreate.Handle("/hearings/{hearing_id}/status", protected(http.HandlerFunc(h.UpdateHearingStatusHandler))).Methods("PUT")

	apiCreate.Handle("/analytics", protected(http.HandlerFunc(stats.StatsHandler))).Methods("GET")
	apiCreate.Handle("/dashboard", protected(http.HandlerFunc(stats.DashboardHandler))).Methods("GET")

	apiCreate.Handle("/ws/notifications", api.QueryToken(protected(http.HandlerFunc(n.HandleNotificationsWebSocket)))).Methods("GET")

	return r
}

// Initialize connects to the database, ensures its indexes and builds the router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}
	a.client = client

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err = client.Connect(connectCtx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	if err = client.Ping(connectCtx); err != nil {
		zap.S().With(err).Error("failed to ping database")
		return err
	}
	zap.S().Info("efiling-api has connected to the database")

	scope := a.Config.NationalIDScope
	if err = databases.EnsureIndexes(connectCtx, a.dbHelper, scope); err != nil {
		zap.S().With(err).Error("failed to ensure indexes")
		return err
	}

	deps, err := a.dependencies(ctx, scope)
	if err != nil {
		return err
	}
	a.Router = NewRouter(deps)
	a.Scheduler = scheduler.NewScheduler(deps.Hearings)
	return nil
}

// Close stops background jobs and disconnects from the database
func (a *App) Close(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Errorw("failed to disconnect from database", "error", err)
		}
	}
}

func (a *App) dependencies(ctx context.Context, scope models.NationalIDScope) (Dependencies, error) {
	if a.Config.JWTSecret == "" {
		return Dependencies{}, fmt.Errorf("jwt secret is not set")
	}

	udb := databases.NewUserDatabase(a.dbHelper)
	cdb := databases.NewEFiledCaseDatabase(a.dbHelper)
	hdb := databases.NewHearingDatabase(a.dbHelper)

	hub := notify.NewHub()
	notifiers := notify.Multi{hub}
	if a.Config.SendGridAPIKey != "" {
		notifiers = append(notifiers, notify.NewMailer(a.Config.SendGridAPIKey, a.Config.EmailFrom, a.Config.EmailFromName))
	} else {
		zap.S().Warn("SENDGRID_API_KEY is not set, hearing emails are disabled")
	}

	store, err := storage.New(ctx, &a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to create document store")
		return Dependencies{}, err
	}
	if store == nil {
		zap.S().Warn("DOCUMENT_STORE is not set, document uploads are disabled")
	}

	directory := services.NewDirectory(udb, a.Config.AllowAdminSignup)
	return Dependencies{
		Directory: directory,
		Cases:     services.NewCases(cdb, udb, scope),
		Hearings:  services.NewHearings(hdb, cdb, notifiers, a.Config.FrontendURL),
		Analytics: &services.Analytics{UDB: udb, CDB: cdb, HDB: hdb},
		Store:     store,
		Hub:       hub,
		Guardian:  api.SetupGoGuardian(ctx, directory, api.NewTokenManager(a.Config.JWTSecret, a.Config.JWTTTL)),
	}, nil
}
