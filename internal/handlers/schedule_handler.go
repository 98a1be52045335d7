package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

// Schedule request/response types

type CreateScheduleRequest struct {
	Title      string `json:"title"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Location   string `json:"location"`
	Place      string `json:"place"`
	CategoryID string `json:"category_id"`
	Assignees  string `json:"assignees"`
	Notes      string `json:"notes"`
}

type ScheduleResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time,omitempty"`
	Location     string `json:"location,omitempty"`
	Place        string `json:"place,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
	Color        string `json:"color"`
	Assignees    string `json:"assignees,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
	AttendStatus string `json:"attend_status,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
	Color string `json:"color"`
}

func toScheduleResponse(s *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		Title:        s.Title,
		Date:         s.Date,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Location:     s.Location,
		Place:        s.Place,
		CategoryID:   s.CategoryID,
		Color:        domain.CategoryColor(s.CategoryID),
		Assignees:    s.Assignees,
		Notes:        s.Notes,
		Status:       string(s.Status),
		AttendStatus: string(s.Attendance),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

func toScheduleResponses(items []*entity.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toScheduleResponse(s))
	}
	return out
}

type ScheduleHandler struct {
	scheduleService contract.ScheduleService
}

func NewScheduleHandler(scheduleService contract.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// List returns the entries of ?date=, or the latest entries when no date is given
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		items []*entity.Schedule
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		items, err = h.scheduleService.ListByDate(ctx, date)
	} else {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err = h.scheduleService.ListRecent(ctx, limit)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponses(items))
}

// ListPublic returns active entries between ?start= and ?end=, both required
func (h *ScheduleHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "start and end are required")
		return
	}

	items, err := h.scheduleService.ListActiveByRange(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponses(items))
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.scheduleService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(schedule))
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "Invalid request body")
		return
	}

	schedule := &entity.Schedule{
		Title:      req.Title,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		Place:      req.Place,
		CategoryID: req.CategoryID,
		Assignees:  req.Assignees,
		Notes:      req.Notes,
	}
	if err := h.scheduleService.Create(r.Context(), schedule); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleResponse(schedule))
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update entity.ScheduleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "Invalid request body")
		return
	}

	if _, err := h.scheduleService.Update(r.Context(), id, update); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "updated": true})
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.scheduleService.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

func (h *ScheduleHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.scheduleService.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Code: c.Code, Label: c.Label, Color: c.Color})
	}

	writeJSON(w, http.StatusOK, out)
}
