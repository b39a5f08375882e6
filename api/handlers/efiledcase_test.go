package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/efiling-api/api/handlers"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/policy"
)

func pendingCase() *models.EFiledCase {
	lawyer := lawyerActor.ID
	judge := judgeActor.ID
	litigant := litigantActor.ID
	return &models.EFiledCase{
		ID: primitive.NewObjectID(),
		Details: models.EFiledCaseDetails{
			Litigant: models.LitigantInfo{
				UserID:       &litigant,
				Name:         "Asha Verma",
				MobileNumber: "9876543210",
				NationalID:   "123456789012",
				Address:      "12 Lake Road",
				State:        "Karnataka",
				District:     "Bengaluru Urban",
			},
			Status:         models.CaseStatusPending,
			CaseNumber:     "2024-000001",
			FiledBy:        lawyer,
			AssignedLawyer: &lawyer,
			AssignedJudge:  &judge,
			Documents:      []models.CaseDocument{},
			Timeline:       []models.TimelineEntry{{Action: models.ActionCaseFiled, Description: "New e-filing case submitted", PerformedBy: lawyer}},
		},
	}
}

func TestCreateEFiledCaseListsMissingFields(t *testing.T) {
	f := newFixture()
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.CreateEFiledCaseHandler(rr, asActor(lawyerActor, "POST", "/api/v1/efiled-cases", map[string]interface{}{
		"litigant": map[string]string{"name": "Asha Verma"},
	}, nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := errorBody(t, rr)
	assert.Equal(t, "validation", body.Kind)
	assert.Len(t, body.Fields, 15)
	f.cdb.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestCreateEFiledCaseForbiddenForLitigant(t *testing.T) {
	f := newFixture()
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.CreateEFiledCaseHandler(rr, asActor(litigantActor, "POST", "/api/v1/efiled-cases", map[string]interface{}{}, nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestEFiledCaseByIDHandler(t *testing.T) {
	otherLawyer := policy.Actor{ID: primitive.NewObjectID(), Role: models.RoleLawyer}
	otherJudge := policy.Actor{ID: primitive.NewObjectID(), Role: models.RoleJudge}
	tests := []struct {
		name   string
		actor  policy.Actor
		status int
	}{
		{"assigned lawyer", lawyerActor, http.StatusOK},
		{"assigned judge", judgeActor, http.StatusOK},
		{"linked litigant", litigantActor, http.StatusOK},
		{"admin", adminActor, http.StatusOK},
		{"other lawyer", otherLawyer, http.StatusForbidden},
		{"other judge", otherJudge, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := pendingCase()
			f := newFixture()
			f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
			c := handlers.EFiledCase{Cases: f.deps.Cases}

			rr := httptest.NewRecorder()
			c.EFiledCaseByIDHandler(rr, asActor(tt.actor, "GET", "/", nil, map[string]string{"case_id": current.ID.Hex()}))

			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestEFiledCaseByIDHandlerInvalidID(t *testing.T) {
	f := newFixture()
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.EFiledCaseByIDHandler(rr, asActor(adminActor, "GET", "/", nil, map[string]string{"case_id": "asdf"}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateEFiledCaseStatusHandler(t *testing.T) {
	current := pendingCase()
	updated := pendingCase()
	updated.ID = current.ID
	updated.Details.Status = models.CaseStatusApproved

	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	f.cdb.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything).Return(updated, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.UpdateEFiledCaseStatusHandler(rr, asActor(judgeActor, "PUT", "/", map[string]string{"status": "approved"},
		map[string]string{"case_id": current.ID.Hex()}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got models.EFiledCase
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, models.CaseStatusApproved, got.Details.Status)
}

func TestUpdateEFiledCaseStatusHandlerRejectsUnknownStatus(t *testing.T) {
	current := pendingCase()
	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.UpdateEFiledCaseStatusHandler(rr, asActor(judgeActor, "PUT", "/", map[string]string{"status": "archived"},
		map[string]string{"case_id": current.ID.Hex()}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	f.cdb.AssertNotCalled(t, "FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestEFiledCasesHandlerScopesLawyer(t *testing.T) {
	f := newFixture()
	f.cdb.On("CountDocuments", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		return filter["efiledCase.assignedLawyer"] == lawyerActor.ID
	})).Return(int64(1), nil)
	f.cdb.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.EFiledCase{*pendingCase()}, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.EFiledCasesHandler(rr, asActor(lawyerActor, "GET", "/api/v1/efiled-cases?limit=5&page=1", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var list models.CaseList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Cases, 1)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestAddDocumentHandler(t *testing.T) {
	current := pendingCase()
	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	f.cdb.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything).Return(current, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.AddDocumentHandler(rr, asActor(lawyerActor, "POST", "/", map[string]string{"title": "Affidavit", "fileUrl": "https://files.test/a.pdf"},
		map[string]string{"case_id": current.ID.Hex()}))

	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func uploadRequest(t *testing.T, caseID string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Vakalatnama"))
	part, err := mw.CreateFormFile("file", "vakalat.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadDocumentHandlerStoresThenRecords(t *testing.T) {
	current := pendingCase()
	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	f.cdb.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(update bson.M) bool {
		doc := update["$push"].(bson.M)["efiledCase.documents"].(models.CaseDocument)
		return doc.Title == "Vakalatnama" && doc.FileURL == "https://files.test/vakalat.pdf"
	})).Return(current, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases, Store: f.store}

	req := uploadRequest(t, current.ID.Hex())
	req = req.WithContext(asActor(lawyerActor, "POST", "/", nil, nil).Context())
	req = mux.SetURLVars(req, map[string]string{"case_id": current.ID.Hex()})
	rr := httptest.NewRecorder()
	c.UploadDocumentHandler(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, []string{"vakalat.pdf"}, f.store.names)
}

func TestUploadDocumentHandlerRejectsBeforeStoring(t *testing.T) {
	current := pendingCase()
	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases, Store: f.store}

	req := uploadRequest(t, current.ID.Hex())
	req = req.WithContext(asActor(litigantActor, "POST", "/", nil, nil).Context())
	req = mux.SetURLVars(req, map[string]string{"case_id": current.ID.Hex()})
	rr := httptest.NewRecorder()
	c.UploadDocumentHandler(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, f.store.names)
}

func TestUploadDocumentHandlerWithoutStore(t *testing.T) {
	f := newFixture()
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.UploadDocumentHandler(rr, asActor(lawyerActor, "POST", "/", nil, map[string]string{"case_id": primitive.NewObjectID().Hex()}))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestAssignJudgeHandlerAdminOnly(t *testing.T) {
	current := pendingCase()
	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.AssignJudgeHandler(rr, asActor(lawyerActor, "PUT", "/", map[string]string{"judgeId": judgeActor.ID.Hex()},
		map[string]string{"case_id": current.ID.Hex()}))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUpdateEFiledCaseHandlerEmptyPatch(t *testing.T) {
	current := pendingCase()
	f := newFixture()
	f.cdb.On("FindOne", mock.Anything, mock.Anything).Return(current, nil)
	c := handlers.EFiledCase{Cases: f.deps.Cases}

	rr := httptest.NewRecorder()
	c.UpdateEFiledCaseHandler(rr, asActor(lawyerActor, "PUT", "/", map[string]string{},
		map[string]string{"case_id": current.ID.Hex()}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
