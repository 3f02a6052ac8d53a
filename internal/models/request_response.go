package models

import (
	"time"

	"github.com/rongwang/nyayadrishti/internal/analytics"
	"github.com/rongwang/nyayadrishti/internal/notes"
)

// Request models
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type SetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm" binding:"required"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

type ReminderRequest struct {
	Date string `json:"date"`
}

// Response models
type AuthResponse struct {
	Status     string `json:"status"`
	Name       string `json:"name,omitempty"`
	Role       Role   `json:"role,omitempty"`
	FirstLogin bool   `json:"firstLogin"`
	Token      string `json:"token,omitempty"`
	ExpiresIn  int    `json:"expiresIn,omitempty"`
	Message    string `json:"message,omitempty"`
}

type SessionResponse struct {
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name,omitempty"`
	Role          Role   `json:"role,omitempty"`
	FirstLogin    bool   `json:"firstLogin"`
}

type CasesResponse struct {
	Status string    `json:"status"`
	Name   string    `json:"name"`
	Role   Role      `json:"role"`
	Cases  TableData `json:"cases"`
}

type AlertsResponse struct {
	Status  string    `json:"status"`
	Aging   TableData `json:"aging"`
	Pending TableData `json:"pending"`
}

type HearingsResponse struct {
	Status      string    `json:"status"`
	Date        string    `json:"date"`
	Today       TableData `json:"today"`
	Upcoming    TableData `json:"upcoming"`
	Rescheduled TableData `json:"rescheduled"`
}

type NoteResponse struct {
	Status string `json:"status"`
	CNR    string `json:"cnrNumber"`
	Text   string `json:"text"`
}

type ReminderResponse struct {
	Status string `json:"status"`
	CNR    string `json:"cnrNumber"`
	Date   string `json:"date"`
}

type RemindersResponse struct {
	Status    string           `json:"status"`
	Reminders []notes.Reminder `json:"reminders"`
}

type StatsResponse struct {
	Status  string            `json:"status"`
	Summary analytics.Summary `json:"summary"`
}

type InputsResponse struct {
	Status            string     `json:"status"`
	Prediction        *TableData `json:"prediction,omitempty"`
	PredictionMissing []string   `json:"predictionMissing,omitempty"`
	NumericColumns    []string   `json:"numericColumns"`
	CompleteRows      int        `json:"completeRows"`
}

type ReloadResponse struct {
	Status   string    `json:"status"`
	LoadedAt time.Time `json:"loadedAt"`
	Cases    int       `json:"cases"`
	Hearings int       `json:"hearings"`
	Merged   int       `json:"merged"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
