package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every HTTP route. Admin routes require the bearer token.
func NewRouter(slackHandler *SlackHandler, scheduleHandler *ScheduleHandler, adminHandler *AdminHandler, adminToken string) *mux.Router {
	r := mux.NewRouter()

	r.Use(Logging)
	r.Use(ErrorRecovery)

	r.HandleFunc("/health", Health).Methods("GET")

	r.HandleFunc("/slack/events", slackHandler.HandleEvents).Methods("POST")
	r.HandleFunc("/slack/interactions", slackHandler.HandleInteractions).Methods("POST")

	r.HandleFunc("/schedules", scheduleHandler.List).Methods("GET")
	r.HandleFunc("/schedules", scheduleHandler.Create).Methods("POST")
	r.HandleFunc("/schedules/{id}", scheduleHandler.Get).Methods("GET")
	r.HandleFunc("/schedules/{id}", scheduleHandler.Update).Methods("PATCH")
	r.HandleFunc("/schedules/{id}", scheduleHandler.Delete).Methods("DELETE")
	r.HandleFunc("/public/schedules", scheduleHandler.ListPublic).Methods("GET")
	r.HandleFunc("/categories", scheduleHandler.Categories).Methods("GET")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(RequireBearer(adminToken))

	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/role", adminHandler.UpdateRole).Methods("PATCH")
	admin.HandleFunc("/users/{id}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/boss", adminHandler.SetBoss).Methods("POST")
	admin.HandleFunc("/secretaries", adminHandler.AddSecretary).Methods("POST")
	admin.HandleFunc("/contacts", adminHandler.ListContacts).Methods("GET")
	admin.HandleFunc("/contacts/{userId}/promote", adminHandler.PromoteContact).Methods("POST")
	admin.HandleFunc("/contacts/{userId}", adminHandler.DeleteContact).Methods("DELETE")
	admin.HandleFunc("/notifications", adminHandler.ListNotifications).Methods("GET")
	admin.HandleFunc("/digest", adminHandler.SendDigest).Methods("POST")
	admin.HandleFunc("/reminders", adminHandler.SendReminders).Methods("POST")
	admin.HandleFunc("/seed", adminHandler.Seed).Methods("POST")

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
