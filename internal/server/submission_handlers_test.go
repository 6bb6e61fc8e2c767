package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"observatory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

func TestCreateSubmission(t *testing.T) {
	_, app := testServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"type":     "observation",
				"username": "clockwork",
				"content":  "responds in under a minute at 4am, every day",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown type",
			body: map[string]string{
				"type":    "complaint",
				"content": "something",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Blank content",
			body: map[string]string{
				"type":    "correction",
				"content": "   ",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Oversized content",
			body: map[string]string{
				"type":    "suggestion",
				"content": strings.Repeat("x", maxSubmissionContentLen+1),
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := postJSON(t, app, "/api/v1/submit", "", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var created models.Submission
				require.NoError(t, json.Unmarshal(raw, &created))
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, models.SubmissionStatusNew, created.Status)
			}
		})
	}
}

func TestSubmissionReviewFlow(t *testing.T) {
	_, app := testServer(t)
	token := adminToken(t, "admin")

	resp, raw := postJSON(t, app, "/api/v1/submit", "", map[string]string{
		"type":     "correction",
		"username": "nightowl",
		"content":  "this account is my colleague, not a bot",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Submission
	require.NoError(t, json.Unmarshal(raw, &created))

	// The inbox lists it as new.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/?status=new", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	listRaw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	_ = listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var listed []models.Submission
	require.NoError(t, json.Unmarshal(listRaw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Review it.
	resp, _ = postJSON(t, app, "/api/v1/submissions/"+created.ID+"/status", token,
		map[string]string{"status": "reviewed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The new queue is empty now.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/submissions/?status=new", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err = app.Test(req)
	require.NoError(t, err)
	listRaw, err = io.ReadAll(listResp.Body)
	require.NoError(t, err)
	_ = listResp.Body.Close()
	require.NoError(t, json.Unmarshal(listRaw, &listed))
	assert.Empty(t, listed)
}

func TestUpdateSubmissionStatus_Validation(t *testing.T) {
	_, app := testServer(t)
	token := adminToken(t, "admin")

	resp, _ := postJSON(t, app, "/api/v1/submissions/nope/status", token,
		map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/v1/submissions/nope/status", token,
		map[string]string{"status": "reviewed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
