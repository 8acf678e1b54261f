// Package server provides the HTTP REST API for the resume enhancer.
package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-enhancer/internal/distribute"
	"github.com/jonathan/resume-enhancer/internal/email"
	"github.com/jonathan/resume-enhancer/internal/parsing"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// maxUploadBytes caps multipart uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// processRequest is the decoded multipart body shared by the process
// endpoints.
type processRequest struct {
	filename string
	content  []byte
	stacks   []types.TechStack
}

// decodeProcessRequest reads the uploaded document and the tech-stack
// text out of a multipart form.
func (s *Server) decodeProcessRequest(r *http.Request) (*processRequest, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid multipart form"}
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, &ErrValidation{Field: "resume", Message: "document file is required"}
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	techText := r.FormValue("tech_stacks")
	points, techs := s.parser.Parse(techText)
	if manual := r.FormValue("manual_points"); manual != "" {
		points = parsing.ParseManualPoints(manual)
	}
	if len(points) == 0 {
		return nil, &ErrValidation{Field: "tech_stacks", Message: "no bullet points could be parsed"}
	}

	return &processRequest{
		filename: header.Filename,
		content:  content,
		stacks:   distribute.Normalize(points, techs),
	}, nil
}

// handleProcess runs one document through the pipeline and returns the
// result with the modified document base64-encoded.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeProcessRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.proc.ProcessNamed(req.filename, req.content, req.stacks)
	s.recordRun(r, result)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"result":   result,
		"document": base64.StdEncoding.EncodeToString(result.ModifiedContent),
	})
}

// handleProcessSend runs the pipeline and emails the modified document.
func (s *Server) handleProcessSend(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeProcessRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	recipient := r.FormValue("recipient")
	sender := r.FormValue("sender")
	password := r.FormValue("password")
	if recipient == "" || sender == "" || password == "" {
		s.errorResponse(w, http.StatusBadRequest, "recipient, sender, and password are required")
		return
	}
	port, _ := strconv.Atoi(r.FormValue("smtp_port"))
	server := email.LookupServer(r.FormValue("smtp_server"), port)

	subject := r.FormValue("subject")
	if subject == "" {
		subject = "Updated Resume - " + req.filename
	}
	body := r.FormValue("body")
	if body == "" {
		body = "Hi,\n\nPlease find the updated resume attached.\n\nBest regards"
	}

	result, err := s.proc.ProcessNamed(req.filename, req.content, req.stacks)
	s.recordRun(r, result)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	creds := email.Credentials{Server: server, Sender: sender, Password: password}
	msg := email.Message{
		Recipient:  recipient,
		Subject:    subject,
		Body:       body,
		Filename:   req.filename,
		Attachment: result.ModifiedContent,
	}
	if err := s.sender.Send(creds, msg); err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"result":    result,
		"recipient": recipient,
	})
}

// handlePreview detects projects without modifying the document.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	content, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read document body")
		return
	}

	projects, err := s.proc.DetectProjects(content)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"projects": projects})
}

// recordRun persists a processing outcome when a database is attached.
// Failures here are logged and never affect the response.
func (s *Server) recordRun(r *http.Request, result *types.ProcessResult) {
	if s.db == nil || result == nil {
		return
	}
	var reqID *uuid.UUID
	if raw := r.FormValue("requirement_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			reqID = &id
		}
	}
	if _, err := s.db.RecordRun(r.Context(), reqID, result); err != nil {
		s.logf("failed to record run: %v", err)
	}
}

// handleCreateRequirement stores a new requirement record.
func (s *Server) handleCreateRequirement(w http.ResponseWriter, r *http.Request) {
	var req types.CreateRequirementRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	created, err := s.db.CreateRequirement(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListRequirements lists requirements, optionally by status.
func (s *Server) handleListRequirements(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListRequirements(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []types.Requirement{}
	}
	s.jsonResponse(w, http.StatusOK, list)
}

// handleGetRequirement fetches one requirement by id.
func (s *Server) handleGetRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid requirement id")
		return
	}

	req, err := s.db.GetRequirement(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req == nil {
		nf := &ErrRequirementNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, req)
}

// handleUpdateRequirement applies a partial update to a requirement.
func (s *Server) handleUpdateRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid requirement id")
		return
	}

	var req types.UpdateRequirementRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, err := s.db.UpdateRequirement(r.Context(), id, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if updated == nil {
		nf := &ErrRequirementNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteRequirement removes a requirement.
func (s *Server) handleDeleteRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid requirement id")
		return
	}

	deleted, err := s.db.DeleteRequirement(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		nf := &ErrRequirementNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListRuns lists recent processing runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
