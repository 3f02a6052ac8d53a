package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rongwang/nyayadrishti/internal/api/testutils"
	"github.com/rongwang/nyayadrishti/internal/models"
)

func TestNotes(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	mehta := testutils.AuthHeaders(testCtx.LoginWithPassword(t, "Mehta", models.RoleAdvocate, "hunter22"))
	judge := testutils.AuthHeaders(testCtx.LoginWithPassword(t, "Rao", models.RoleJudge, "hunter22"))

	// Test case 1: Save and read back a note
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/notes/C1",
		models.NoteRequest{Text: "Client to bring originals"}, mehta)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/notes/C1", nil, mehta)
	require.Equal(t, http.StatusOK, w.Code)

	var note models.NoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	assert.Equal(t, "C1", note.CNR)
	assert.Equal(t, "Client to bring originals", note.Text)

	// Test case 2: A case outside the advocate's view
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/notes/C3",
		models.NoteRequest{Text: "x"}, mehta)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 3: Judges have no notes
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/notes/C1", nil, judge)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReminders(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	mehta := testutils.AuthHeaders(testCtx.LoginWithPassword(t, "Mehta", models.RoleAdvocate, "hunter22"))

	// Test case 1: Dates are normalized
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/reminders/C2",
		models.ReminderRequest{Date: "20 Jun 2024"}, mehta)
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.ReminderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "2024-06-20", saved.Date)

	// Test case 2: Unparseable date
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/reminders/C2",
		models.ReminderRequest{Date: "next week"}, mehta)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Listing
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/reminders", nil, mehta)
	require.Equal(t, http.StatusOK, w.Code)

	var list models.RemindersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Reminders, 1)
	assert.Equal(t, "C2", list.Reminders[0].CNR)
	assert.Equal(t, "2024-06-20", list.Reminders[0].Day)
	assert.True(t, list.Reminders[0].Overdue)

	// Test case 4: A blank date clears the reminder
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/reminders/C2",
		models.ReminderRequest{Date: ""}, mehta)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/reminders", nil, mehta)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Reminders)
}
