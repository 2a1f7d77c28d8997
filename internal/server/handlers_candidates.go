package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/hireio/hireio/internal/db"
	"github.com/hireio/hireio/internal/server/middleware"
	"github.com/hireio/hireio/internal/types"
)

// maxResumeBytes caps resume uploads at 10 MB.
const maxResumeBytes = 10 << 20

// ---------------------------------------------------------------------
// Candidate Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	candidate, err := s.store.CreateCandidate(r.Context(), db.CreateCandidateParams{
		OrgID:    identity.OrgID,
		Name:     req.Name,
		Email:    req.Email,
		Headline: req.Headline,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.audit(r, identity, "candidate.created", "candidate", &candidate.ID, nil)
	s.jsonResponse(w, http.StatusCreated, candidate)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidates, total, err := s.store.ListCandidates(r.Context(), identity.OrgID,
		parseQueryInt(r, "limit", 50), parseQueryInt(r, "offset", 0))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": candidates, "total": total})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	identity, candidateID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), identity.OrgID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	identity, candidateID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	var req types.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	candidate, err := s.store.UpdateCandidate(r.Context(), identity.OrgID, candidateID, req.Name, req.Email, req.Headline)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	s.audit(r, identity, "candidate.updated", "candidate", &candidate.ID, nil)
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	identity, candidateID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	deleted, err := s.store.DeleteCandidate(r.Context(), identity.OrgID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	s.audit(r, identity, "candidate.deleted", "candidate", &candidateID, nil)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleUploadResume accepts a multipart resume document, runs the feature
// extractor, and stores the extracted profile on the candidate. Extraction
// failure is not a request failure: the candidate stays usable with an empty
// profile and the response reports what went wrong.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	identity, candidateID, ok := s.identityAndID(w, r)
	if !ok {
		return
	}
	if !canWrite(identity.Role) {
		s.errorResponse(w, http.StatusForbidden, "Insufficient role")
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), identity.OrgID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeBytes)
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file")
		return
	}

	profile, err := s.extractor.Extract(data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		// Degrade: record the failure, keep the candidate.
		log.Printf("resume extraction failed for candidate %s: %v", candidateID, err)
		s.audit(r, identity, "candidate.resume_extraction_failed", "candidate", &candidateID,
			map[string]any{"filename": header.Filename, "error": err.Error()})
		s.jsonResponse(w, http.StatusOK, types.ResumeUploadResponse{
			CandidateID:     candidateID.String(),
			Extracted:       false,
			ExtractionError: err.Error(),
		})
		return
	}

	updated, err := s.store.UpdateCandidateProfile(r.Context(), identity.OrgID, candidateID,
		profile.Skills, profile.YearsOfExperience, profile.Summary, profile.TechnologyTags)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	s.audit(r, identity, "candidate.resume_extracted", "candidate", &candidateID,
		map[string]any{"filename": header.Filename, "skills": len(profile.Skills)})
	s.jsonResponse(w, http.StatusOK, types.ResumeUploadResponse{
		CandidateID:       candidateID.String(),
		Extracted:         true,
		Skills:            updated.Skills,
		YearsOfExperience: updated.YearsOfExperience,
		Summary:           updated.Summary,
		TechnologyTags:    updated.TechnologyTags,
	})
}
