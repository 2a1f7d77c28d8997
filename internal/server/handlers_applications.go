package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hireio/hireio/internal/db"
	"github.com/hireio/hireio/internal/match"
	"github.com/hireio/hireio/internal/server/middleware"
	"github.com/hireio/hireio/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

// handleCreateApplication attaches a candidate to a job and computes the
// match score from the job's parameters and the candidate's extracted
// profile.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
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
	if job.Status != db.JobStatusOpen {
		s.errorResponse(w, http.StatusConflict, "Job is not open for applications")
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), identity.OrgID, req.CandidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	score := s.scorer.Score(matchProfile(job), match.CandidateProfile{
		Skills:            candidate.Skills,
		YearsOfExperience: candidate.YearsOfExperience,
	})

	application, err := s.store.CreateApplication(r.Context(), identity.OrgID, jobID, candidate.ID, &score)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.audit(r, identity, "application.created", "application", &application.ID,
		map[string]any{"job_id": jobID.String(), "score": score})
	s.jsonResponse(w, http.StatusCreated, application)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	identity, jobID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}

	applications, err := s.store.ListApplicationsByJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": applications, "total": len(applications)})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	identity, applicationID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}

	application, err := s.store.GetApplication(r.Context(), identity.OrgID, applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, application)
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	identity, applicationID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	application, err := s.store.UpdateApplicationStatus(r.Context(), identity.OrgID, applicationID, req.Status)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.audit(r, identity, "application.status_changed", "application", &application.ID,
		map[string]any{"status": req.Status})
	s.jsonResponse(w, http.StatusOK, application)
}

// handleExplainScore returns the per-factor breakdown behind an
// application's match score, recomputed from current data.
func (s *Server) handleExplainScore(w http.ResponseWriter, r *http.Request) {
	identity, applicationID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}

	application, err := s.store.GetApplication(r.Context(), identity.OrgID, applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	job, err := s.store.GetJob(r.Context(), identity.OrgID, application.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	candidate, err := s.store.GetCandidate(r.Context(), identity.OrgID, application.CandidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil || candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Application records incomplete")
		return
	}

	breakdown := s.scorer.Explain(matchProfile(job), match.CandidateProfile{
		Skills:            candidate.Skills,
		YearsOfExperience: candidate.YearsOfExperience,
	})

	s.jsonResponse(w, http.StatusOK, breakdown)
}

// handleShortlist returns the anonymized review list for a job: candidates
// in match-score order, aliased and stripped of identifying fields.
func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
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

	applications, err := s.store.ListApplicationsByJob(r.Context(), identity.OrgID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	limit := s.shortlistLimit
	if limit <= 0 {
		limit = 25
	}

	entries := make([]types.ShortlistEntry, 0, limit)
	for _, app := range applications {
		if app.Status == db.ApplicationStatusRejected {
			continue
		}
		if len(entries) >= limit {
			break
		}

		candidate, err := s.store.GetCandidate(r.Context(), identity.OrgID, app.CandidateID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if candidate == nil {
			continue
		}

		// Aliases are positional within this response only; nothing ties
		// "Candidate 1" to a stored identity.
		entries = append(entries, types.ShortlistEntry{
			Alias:             fmt.Sprintf("Candidate %d", len(entries)+1),
			ApplicationID:     app.ID,
			MatchScore:        app.MatchScore,
			Skills:            candidate.Skills,
			YearsOfExperience: candidate.YearsOfExperience,
			TechnologyTags:    candidate.TechnologyTags,
		})
	}

	s.jsonResponse(w, http.StatusOK, types.ShortlistResponse{JobID: jobID, Entries: entries})
}

// ---------------------------------------------------------------------
// Audit Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if identity.Role != db.RoleOwner && identity.Role != db.RoleAdmin {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	events, total, err := s.store.ListAuditEvents(r.Context(), identity.OrgID,
		parseQueryInt(r, "limit", 50), parseQueryInt(r, "offset", 0))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"events": events, "total": total})
}
