package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireio/hireio/internal/db"
	"github.com/hireio/hireio/internal/server/middleware"
)

func createJobRequest(t *testing.T, identity middleware.Identity, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return identified(req, identity)
}

func TestCreateJob(t *testing.T) {
	s := newTestServer()
	identity := recruiterIdentity()

	body := `{
		"title": "Backend Engineer",
		"description": "Build the matching service",
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": ["Kubernetes"],
		"experience_level": "senior",
		"leniency": 0.4
	}`
	w := httptest.NewRecorder()
	s.handleCreateJob(w, createJobRequest(t, identity, body))

	require.Equal(t, http.StatusCreated, w.Code)

	var job db.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, db.JobStatusOpen, job.Status)
	assert.Equal(t, identity.OrgID, job.OrgID)

	// Creation lands on the audit trail.
	require.Len(t, s.mock.auditEvents, 1)
	assert.Equal(t, "job.created", s.mock.auditEvents[0].Action)
}

func TestCreateJob_ValidationFailure(t *testing.T) {
	s := newTestServer()

	w := httptest.NewRecorder()
	s.handleCreateJob(w, createJobRequest(t, recruiterIdentity(), `{"description": "no title"}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.mock.jobs)
}

func TestCreateJob_ReviewerForbidden(t *testing.T) {
	s := newTestServer()
	identity := recruiterIdentity()
	identity.Role = db.RoleReviewer

	body := `{"title": "Backend Engineer", "description": "d"}`
	w := httptest.NewRecorder()
	s.handleCreateJob(w, createJobRequest(t, identity, body))

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, s.mock.jobs)
}

func TestGetJob_CrossTenantInvisible(t *testing.T) {
	s := newTestServer()
	owner := recruiterIdentity()
	job, err := s.mock.CreateJob(context.Background(), db.CreateJobParams{
		OrgID: owner.OrgID, Title: "T", Description: "D", CreatedBy: owner.UserID,
	})
	require.NoError(t, err)

	// A different organization asks for the same job ID.
	intruder := recruiterIdentity()
	req := identified(httptest.NewRequest(http.MethodGet, "/jobs/"+job.ID.String(), nil), intruder)
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateJob(t *testing.T) {
	s := newTestServer()
	identity := recruiterIdentity()
	job, err := s.mock.CreateJob(context.Background(), db.CreateJobParams{
		OrgID: identity.OrgID, Title: "T", Description: "D", CreatedBy: identity.UserID,
	})
	require.NoError(t, err)

	body := `{"title": "T2", "description": "D2", "status": "closed", "leniency": 0.2}`
	req := identified(httptest.NewRequest(http.MethodPut, "/jobs/"+job.ID.String(), bytes.NewBufferString(body)), identity)
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleUpdateJob(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T2", s.mock.jobs[job.ID].Title)
	assert.Equal(t, db.JobStatusClosed, s.mock.jobs[job.ID].Status)
}

func TestDeleteJob(t *testing.T) {
	s := newTestServer()
	identity := recruiterIdentity()
	job, err := s.mock.CreateJob(context.Background(), db.CreateJobParams{
		OrgID: identity.OrgID, Title: "T", Description: "D", CreatedBy: identity.UserID,
	})
	require.NoError(t, err)

	req := identified(httptest.NewRequest(http.MethodDelete, "/jobs/"+job.ID.String(), nil), identity)
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleDeleteJob(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.mock.jobs)
}

func TestDeleteJob_InvalidID(t *testing.T) {
	s := newTestServer()

	req := identified(httptest.NewRequest(http.MethodDelete, "/jobs/nonsense", nil), recruiterIdentity())
	req.SetPathValue("id", "nonsense")
	w := httptest.NewRecorder()

	s.handleDeleteJob(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListJobs_ScopedToOrg(t *testing.T) {
	s := newTestServer()
	identity := recruiterIdentity()
	_, err := s.mock.CreateJob(context.Background(), db.CreateJobParams{
		OrgID: identity.OrgID, Title: "Mine", Description: "D", CreatedBy: identity.UserID,
	})
	require.NoError(t, err)
	_, err = s.mock.CreateJob(context.Background(), db.CreateJobParams{
		OrgID: uuid.New(), Title: "Theirs", Description: "D", CreatedBy: uuid.New(),
	})
	require.NoError(t, err)

	req := identified(httptest.NewRequest(http.MethodGet, "/jobs", nil), identity)
	w := httptest.NewRecorder()

	s.handleListJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Jobs  []db.Job `json:"jobs"`
		Total int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Mine", resp.Jobs[0].Title)
}

func TestGenerateJobProfile_FeatureDisabled(t *testing.T) {
	s := newTestServer() // no llmClient configured
	identity := recruiterIdentity()
	job, err := s.mock.CreateJob(context.Background(), db.CreateJobParams{
		OrgID: identity.OrgID, Title: "T", Description: "D", CreatedBy: identity.UserID,
	})
	require.NoError(t, err)

	req := identified(httptest.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/ai-profile", nil), identity)
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleGenerateJobProfile(w, req)
	require.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRescoreJob(t *testing.T) {
	s := newTestServer()
	identity := recruiterIdentity()
	ctx := context.Background()

	job, err := s.mock.CreateJob(ctx, db.CreateJobParams{
		OrgID: identity.OrgID, Title: "T", Description: "D",
		RequiredSkills: []string{"Go"}, CreatedBy: identity.UserID,
	})
	require.NoError(t, err)

	candidate, err := s.mock.CreateCandidate(ctx, db.CreateCandidateParams{
		OrgID: identity.OrgID, Name: "C", Email: "c@example.com", Skills: []string{"Go"},
	})
	require.NoError(t, err)

	stale := 1
	app, err := s.mock.CreateApplication(ctx, identity.OrgID, job.ID, candidate.ID, &stale)
	require.NoError(t, err)

	req := identified(httptest.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/rescore", nil), identity)
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleRescoreJob(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Updated int `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Updated)

	// Full required coverage, empty preferred, neutral experience:
	// 0.55 + 0 + 0.125 rounds to 68.
	require.NotNil(t, s.mock.applications[app.ID].MatchScore)
	assert.Equal(t, 68, *s.mock.applications[app.ID].MatchScore)
}
