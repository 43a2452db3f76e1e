package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/dataset"
	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
	"github.com/osse101/LuckyDraw_Go/internal/raffle"
	"github.com/osse101/LuckyDraw_Go/internal/session"
)

// MaxUploadBytes bounds multipart dataset uploads
const MaxUploadBytes = 16 << 20

// Multipart field names for dataset uploads
const (
	FormFieldParticipants = "participants"
	FormFieldPrizes       = "prizes"
)

// ParticipantInput is one inline participant
type ParticipantInput struct {
	Name  string            `json:"name" validate:"required,notblank,max=200"`
	Extra map[string]string `json:"extra,omitempty"`
}

// PrizeInput is one inline prize row
type PrizeInput struct {
	Group string `json:"group" validate:"required,notblank,max=100"`
	Prize string `json:"prize" validate:"required,notblank,max=200"`
	Image string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// CreateSessionRequest starts a session from inline data or the server's
// default datasets. With session_id the call initializes that session only
// if it does not exist yet.
type CreateSessionRequest struct {
	SessionID          string             `json:"session_id,omitempty" validate:"omitempty,uuid"`
	UseDefaultDatasets bool               `json:"use_default_datasets"`
	Participants       []ParticipantInput `json:"participants,omitempty" validate:"required_without=UseDefaultDatasets,omitempty,min=1,max=100000,dive"`
	Prizes             []PrizeInput       `json:"prizes,omitempty" validate:"required_without=UseDefaultDatasets,omitempty,min=1,max=10000,dive"`
}

// DrawRequest selects the group to draw
type DrawRequest struct {
	Group string `json:"group" validate:"required,notblank,max=100"`
}

// GroupsResponse lists the groups still available
type GroupsResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Groups    []string  `json:"groups"`
}

// WinnersResponse is the JSON form of the ledger
type WinnersResponse struct {
	SessionID uuid.UUID             `json:"session_id"`
	Winners   []domain.WinnerRecord `json:"winners"`
}

// DatasetPaths are the server-side default datasets
type DatasetPaths struct {
	Participants string
	Prizes       string
}

// SessionHandler serves the draw session endpoints
type SessionHandler struct {
	svc      raffle.Service
	defaults DatasetPaths
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(svc raffle.Service, defaults DatasetPaths) *SessionHandler {
	return &SessionHandler{svc: svc, defaults: defaults}
}

// HandleCreateSession creates a draw session
// @Summary Create draw session
// @Description Starts a session from inline participants and prizes, or from the server's default datasets
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Datasets"
// @Success 201 {object} domain.SessionSummary "Session created"
// @Success 200 {object} domain.SessionSummary "Session already existed"
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create session"); err != nil {
		return
	}
	LogRequestFields(logger.FromContext(r.Context()), "session_id", req.SessionID,
		"default_datasets", req.UseDefaultDatasets, "participants", len(req.Participants), "prizes", len(req.Prizes))

	load := h.inlineLoader(req)
	if req.UseDefaultDatasets {
		load = raffle.FileLoader(h.defaults.Participants, h.defaults.Prizes)
	}

	if req.SessionID != "" {
		summary, created, err := h.svc.InitSession(r.Context(), uuid.MustParse(req.SessionID), load)
		if err != nil {
			respondServiceError(w, r, "Init session", err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		respondJSON(w, status, summary)
		return
	}

	participants, prizes, err := load(r.Context())
	if err != nil {
		respondServiceError(w, r, "Load datasets", err)
		return
	}
	summary, err := h.svc.CreateSession(r.Context(), participants, prizes)
	if err != nil {
		respondServiceError(w, r, "Create session", err)
		return
	}
	respondJSON(w, http.StatusCreated, summary)
}

// HandleUploadSession creates a session from uploaded dataset files
// @Summary Create draw session from files
// @Description Multipart upload of a participants file and a prizes file (.csv or .json)
// @Tags sessions
// @Accept mpfd
// @Produce json
// @Param participants formData file true "Participants dataset"
// @Param prizes formData file true "Prizes dataset"
// @Success 201 {object} domain.SessionSummary
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/sessions/upload [post]
func (h *SessionHandler) HandleUploadSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgUploadTooLarge)
			return
		}
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var participants []domain.Participant
	err := readUpload(r, FormFieldParticipants, func(f multipart.File, format dataset.Format) error {
		var err error
		participants, err = dataset.ReadParticipants(f, format)
		return err
	})
	if err != nil {
		h.respondUploadError(w, r, FormFieldParticipants, err)
		return
	}

	var prizes []domain.Prize
	err = readUpload(r, FormFieldPrizes, func(f multipart.File, format dataset.Format) error {
		var err error
		prizes, err = dataset.ReadPrizes(f, format)
		return err
	})
	if err != nil {
		h.respondUploadError(w, r, FormFieldPrizes, err)
		return
	}

	summary, err := h.svc.CreateSession(r.Context(), participants, prizes)
	if err != nil {
		respondServiceError(w, r, "Create session", err)
		return
	}
	respondJSON(w, http.StatusCreated, summary)
}

// HandleGetSession returns the session summary
// @Summary Get draw session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.SessionSummary
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.Summary(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get session", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleDeleteSession ends a session
// @Summary Delete draw session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSession(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete session", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionDeleted})
}

// HandleListGroups lists the groups that still have prizes
// @Summary List remaining groups
// @Tags draws
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} GroupsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/groups [get]
func (h *SessionHandler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	groups, err := h.svc.ListGroups(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "List groups", err)
		return
	}
	respondJSON(w, http.StatusOK, GroupsResponse{SessionID: id, Groups: groups})
}

// HandleDrawGroup draws every remaining prize of a group
// @Summary Draw a group
// @Description Assigns a distinct random participant to every remaining prize of the group
// @Tags draws
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DrawRequest true "Group to draw"
// @Success 200 {object} domain.GroupDrawOutcome
// @Failure 404 {object} ErrorResponse "Unknown session or group without prizes"
// @Failure 409 {object} ErrorResponse "Not enough participants, or another group in progress"
// @Router /api/v1/sessions/{id}/draws [post]
func (h *SessionHandler) HandleDrawGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	var req DrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Draw group"); err != nil {
		return
	}
	outcome, err := h.svc.DrawGroup(r.Context(), id, strings.TrimSpace(req.Group))
	if err != nil {
		respondServiceError(w, r, "Draw group", err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// HandleDrawNext draws the next prize of a group
// @Summary Draw the next prize
// @Description Commits one winner; the group stays in progress until its last prize is drawn
// @Tags draws
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DrawRequest true "Group to draw"
// @Success 200 {object} domain.PrizeDrawOutcome
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/draws/next [post]
func (h *SessionHandler) HandleDrawNext(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	var req DrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Draw next"); err != nil {
		return
	}
	outcome, err := h.svc.DrawNext(r.Context(), id, strings.TrimSpace(req.Group))
	if err != nil {
		respondServiceError(w, r, "Draw next", err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// HandleWinners returns the winners ledger
// @Summary Winners ledger
// @Description Every winner in sequence order; format=csv downloads a CSV file
// @Tags draws
// @Produce json,text/csv
// @Param id path string true "Session ID"
// @Param format query string false "json (default) or csv"
// @Success 200 {object} WinnersResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/winners [get]
func (h *SessionHandler) HandleWinners(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	formatParam := GetOptionalQueryParam(r, "format", string(dataset.FormatJSON))
	format, err := dataset.ParseFormat(formatParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidFormat, formatParam))
		return
	}

	winners, err := h.svc.Winners(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get winners", err)
		return
	}

	if format == dataset.FormatJSON {
		if winners == nil {
			winners = []domain.WinnerRecord{}
		}
		respondJSON(w, http.StatusOK, WinnersResponse{SessionID: id, Winners: winners})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="winners-%s.csv"`, id))
	if err := dataset.WriteWinners(w, winners, dataset.FormatCSV); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgExportWinnersFailed, "session_id", id, "error", err)
	}
}

// inlineLoader serves the datasets sent in the request body
func (h *SessionHandler) inlineLoader(req CreateSessionRequest) session.Loader {
	return func(context.Context) ([]domain.Participant, []domain.Prize, error) {
		return toParticipants(req.Participants), toPrizes(req.Prizes), nil
	}
}

func (h *SessionHandler) respondUploadError(w http.ResponseWriter, r *http.Request, field string, err error) {
	if errors.Is(err, http.ErrMissingFile) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingUploadFile, field))
		return
	}
	respondServiceError(w, r, "Read "+field+" upload", err)
}

// readUpload opens the multipart file field and hands it to read with the
// format taken from the uploaded file name.
func readUpload(r *http.Request, field string, read func(multipart.File, dataset.Format) error) error {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return err
	}
	defer f.Close()

	format, err := dataset.FormatFromPath(hdr.Filename)
	if err != nil {
		return err
	}
	return read(f, format)
}

func toParticipants(in []ParticipantInput) []domain.Participant {
	out := make([]domain.Participant, len(in))
	for i, p := range in {
		out[i] = domain.Participant{ID: uuid.New(), Name: strings.TrimSpace(p.Name), Extra: p.Extra}
	}
	return out
}

func toPrizes(in []PrizeInput) []domain.Prize {
	out := make([]domain.Prize, len(in))
	for i, p := range in {
		out[i] = domain.Prize{Group: strings.TrimSpace(p.Group), Prize: strings.TrimSpace(p.Prize), Image: strings.TrimSpace(p.Image)}
	}
	return out
}
