package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/services"
	"github.com/linesmerrill/efiling-api/storage"
)

// maxUploadBytes caps multipart document uploads
const maxUploadBytes = 20 << 20

// EFiledCase exported for testing purposes
type EFiledCase struct {
	Cases *services.Cases
	Store storage.DocumentStore
}

type fileCaseRequest struct {
	Litigant models.LitigantInfo `json:"litigant"`
	Case     models.CaseInfo     `json:"case"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignJudgeRequest struct {
	JudgeID string `json:"judgeId"`
}

type documentRequest struct {
	Title   string `json:"title"`
	FileURL string `json:"fileUrl"`
}

// CreateEFiledCaseHandler files a new case
func (c EFiledCase) CreateEFiledCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var in fileCaseRequest
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	efiledCase, err := c.Cases.FileCase(ctx, in.Litigant, in.Case, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, efiledCase)
}

// EFiledCasesHandler returns the cases visible to the caller
func (c EFiledCase) EFiledCasesHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	limit, page := pageParams(r)
	q := models.CaseQuery{
		Status: models.CaseStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Page:   page,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.Cases.List(ctx, actor, q)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

// EFiledCaseByIDHandler returns a single case
func (c EFiledCase) EFiledCaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	efiledCase, err := c.Cases.Get(ctx, mux.Vars(r)["case_id"], actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, efiledCase)
}

// UpdateEFiledCaseHandler edits case metadata
func (c EFiledCase) UpdateEFiledCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var patch models.CasePatch
	if err := decode(w, r, &patch); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	efiledCase, err := c.Cases.UpdateCaseFields(ctx, mux.Vars(r)["case_id"], patch, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, efiledCase)
}

// UpdateEFiledCaseStatusHandler moves a case through its lifecycle
func (c EFiledCase) UpdateEFiledCaseStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var in statusRequest
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	efiledCase, err := c.Cases.UpdateStatus(ctx, mux.Vars(r)["case_id"], models.CaseStatus(in.Status), actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, efiledCase)
}

// AssignJudgeHandler assigns a judge to a case
func (c EFiledCase) AssignJudgeHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var in assignJudgeRequest
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	efiledCase, err := c.Cases.AssignJudge(ctx, mux.Vars(r)["case_id"], in.JudgeID, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, efiledCase)
}

// AddDocumentHandler records a document that is already stored elsewhere
func (c EFiledCase) AddDocumentHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var in documentRequest
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	efiledCase, err := c.Cases.AddDocument(ctx, mux.Vars(r)["case_id"], in.Title, in.FileURL, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, efiledCase)
}

// UploadDocumentHandler stores a multipart file and records it on the case
func (c EFiledCase) UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if c.Store == nil {
		api.WriteError(w, r, apperrors.Unavailable("document uploads are not configured", nil))
		return
	}
	caseID := mux.Vars(r)["case_id"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.WriteError(w, r, apperrors.Validation("invalid upload", apperrors.FieldError{Field: "file", Message: err.Error()}))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.WriteError(w, r, apperrors.Validation("invalid upload", apperrors.Required("file")))
		return
	}
	defer file.Close()

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = path.Base(header.Filename)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Cases.CanAddDocument(ctx, caseID, actor); err != nil {
		api.WriteError(w, r, err)
		return
	}

	locator, err := c.Store.Put(ctx, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		api.WriteError(w, r, apperrors.Unavailable("failed to store document", err))
		return
	}
	zap.S().Infow("document stored", "caseId", caseID, "locator", locator)

	efiledCase, err := c.Cases.AddDocument(ctx, caseID, title, locator, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, efiledCase)
}
