package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/hireio/hireio/internal/db"
	"github.com/hireio/hireio/internal/ingest"
	"github.com/hireio/hireio/internal/llm"
	"github.com/hireio/hireio/internal/match"
	"github.com/hireio/hireio/internal/server/middleware"
	"github.com/hireio/hireio/internal/types"
)

// ---------------------------------------------------------------------
// Job Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.store.CreateJob(r.Context(), db.CreateJobParams{
		OrgID:           identity.OrgID,
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		ExperienceLevel: req.ExperienceLevel,
		Leniency:        req.Leniency,
		CreatedBy:       identity.UserID,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.audit(r, identity, "job.created", "job", &job.ID, map[string]any{"title": job.Title})
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobs, total, err := s.store.ListJobs(r.Context(), identity.OrgID, db.ListJobsOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  parseQueryInt(r, "limit", 50),
		Offset: parseQueryInt(r, "offset", 0),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "total": total})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.store.UpdateJob(r.Context(), identity.OrgID, jobID, db.UpdateJobParams{
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		ExperienceLevel: req.ExperienceLevel,
		Leniency:        req.Leniency,
		Status:          req.Status,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.audit(r, identity, "job.updated", "job", &job.ID, map[string]any{"status": job.Status})
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	deleted, err := s.store.DeleteJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.audit(r, identity, "job.deleted", "job", &jobID, nil)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleIngestJob fetches a public posting URL and creates a draft job from
// its text. Matching parameters stay empty until a recruiter fills them in.
func (s *Server) handleIngestJob(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.IngestJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	posting, err := ingest.FetchPosting(r.Context(), req.URL, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	title := posting.Title
	if title == "" {
		title = "Imported posting"
	}

	job, err := s.store.CreateJob(r.Context(), db.CreateJobParams{
		OrgID:       identity.OrgID,
		Title:       title,
		Description: posting.Description,
		CreatedBy:   identity.UserID,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.audit(r, identity, "job.ingested", "job", &job.ID, map[string]any{"url": req.URL})
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleGenerateJobProfile asks the LLM for an ideal-candidate profile and
// stores it on the job.
func (s *Server) handleGenerateJobProfile(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	if s.llmClient == nil {
		err := &ErrFeatureDisabled{Feature: "AI job profiles"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := s.store.GetJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	generated, err := llm.GenerateJobProfile(r.Context(), s.llmClient, job.Title, job.Description)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Profile generation failed: "+err.Error())
		return
	}

	profile := &db.AIJobProfile{
		Summary:            generated.Summary,
		IdealCandidate:     generated.IdealCandidate,
		ScreeningQuestions: generated.ScreeningQuestions,
	}
	if err := s.store.SetJobAIProfile(r.Context(), identity.OrgID, jobID, profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.audit(r, identity, "job.ai_profile_generated", "job", &jobID, nil)
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleRescoreJob recomputes the match score of every application against
// the job's current matching parameters.
func (s *Server) handleRescoreJob(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	job, err := s.store.GetJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	applications, err := s.store.ListApplicationsByJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	items := make([]match.BatchItem, 0, len(applications))
	for _, app := range applications {
		candidate, err := s.store.GetCandidate(r.Context(), identity.OrgID, app.CandidateID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if candidate == nil {
			continue
		}
		items = append(items, match.BatchItem{
			ID: app.ID.String(),
			Candidate: match.CandidateProfile{
				Skills:            candidate.Skills,
				YearsOfExperience: candidate.YearsOfExperience,
			},
		})
	}

	results, err := s.scorer.ScoreBatch(r.Context(), matchProfile(job), items)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Rescore failed: "+err.Error())
		return
	}

	updated := 0
	for _, result := range results {
		appID, err := uuid.Parse(result.ID)
		if err != nil {
			continue
		}
		if err := s.store.UpdateApplicationScore(r.Context(), identity.OrgID, appID, result.Score); err != nil {
			log.Printf("rescore: failed to update application %s: %v", result.ID, err)
			continue
		}
		updated++
	}

	s.audit(r, identity, "job.rescored", "job", &jobID, map[string]any{"updated": updated})
	s.jsonResponse(w, http.StatusOK, types.RescoreResponse{JobID: jobID, Updated: updated})
}

// matchProfile maps a stored job to its scoring profile.
func matchProfile(job *db.Job) match.JobProfile {
	profile := match.JobProfile{
		RequiredSkills:  job.RequiredSkills,
		PreferredSkills: job.PreferredSkills,
		Leniency:        job.Leniency,
	}
	if job.ExperienceLevel != nil {
		profile.ExperienceLevel = match.ExperienceLevel(*job.ExperienceLevel)
	}
	return profile
}

// identityAndID pulls the caller identity and the {id} path parameter,
// writing the error response itself when either is missing.
func (s *Server) identityAndID(w http.ResponseWriter, r *http.Request) (middleware.Identity, uuid.UUID, bool) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return middleware.Identity{}, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid ID")
		return middleware.Identity{}, uuid.Nil, false
	}
	return identity, id, true
}

// audit records an event on the organization's trail. Failures are logged,
// never surfaced; the audit trail must not break the operation it records.
func (s *Server) audit(r *http.Request, identity middleware.Identity, action, entityType string, entityID *uuid.UUID, detail map[string]any) {
	actorID := identity.UserID
	event := db.AuditEvent{
		OrgID:      identity.OrgID,
		ActorID:    &actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := s.store.InsertAuditEvent(r.Context(), event); err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}
