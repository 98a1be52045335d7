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

type UserRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type RoleRequest struct {
	Role domain.Role `json:"role"`
}

type PromoteRequest struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	UserID    string `json:"userId,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ContactResponse struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}

type NotificationResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Target     string `json:"target"`
	ScheduleID string `json:"schedule_id"`
	SentDay    string `json:"sent_day"`
	SentAt     string `json:"sent_at"`
}

type SentResponse struct {
	Sent int `json:"sent"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Role:      string(u.Role),
		UserID:    u.MessagingID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

type AdminHandler struct {
	adminService  contract.AdminService
	digestService contract.DigestService
	now           func() time.Time
}

func NewAdminHandler(adminService contract.AdminService, digestService contract.DigestService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		digestService: digestService,
		now:           time.Now,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeUserRequest(w http.ResponseWriter, r *http.Request) (UserRequest, bool) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "Invalid request body")
		return req, false
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, ErrValidation, "userId is required")
		return req, false
	}
	return req, true
}

func (h *AdminHandler) SetBoss(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := h.adminService.SetBoss(r.Context(), req.UserID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AdminHandler) AddSecretary(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := h.adminService.AddSecretary(r.Context(), req.UserID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "Invalid request body")
		return
	}

	if err := h.adminService.UpdateRole(r.Context(), id, req.Role); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "role": req.Role})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.adminService.DeleteUser(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.adminService.ListContacts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactResponse{
			UserID:      c.MessagingID,
			DisplayName: c.DisplayName,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) PromoteContact(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "Invalid request body")
		return
	}

	user, err := h.adminService.PromoteContact(r.Context(), userID, req.Name, req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := h.adminService.DeleteContact(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": userID, "deleted": true})
}

// ListNotifications returns the ledger for ?day=YYYY-MM-DD
func (h *AdminHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.adminService.ListNotifications(r.Context(), r.URL.Query().Get("day"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:         n.ID,
			Type:       string(n.Type),
			Target:     n.Target,
			ScheduleID: n.ScheduleID,
			SentDay:    n.SentDay,
			SentAt:     n.SentAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ParseDigestType maps the public names "today" and "tomorrow" to ledger types
func ParseDigestType(s string) (domain.NotificationType, bool) {
	switch s {
	case "", "today", string(domain.NotificationDaily):
		return domain.NotificationDaily, true
	case "tomorrow":
		return domain.NotificationTomorrow, true
	}
	return "", false
}

// SendDigest triggers ?type=today|tomorrow; ?force=true bypasses the once-per-day ledger
func (h *AdminHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	notificationType, ok := ParseDigestType(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, ErrValidation, "type must be today or tomorrow")
		return
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	sent, err := h.digestService.SendDigest(r.Context(), notificationType, h.now(), force)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SentResponse{Sent: sent})
}

func (h *AdminHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.digestService.SendReminders(r.Context(), h.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SentResponse{Sent: sent})
}

func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Seed(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seeded": true})
}
