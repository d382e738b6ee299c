package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spendgenie/genie/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: Config{BaseURL: "http://localhost:5000"},
		},
		{
			name:    "missing base URL",
			config:  Config{},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "not a URL",
			config:  Config{BaseURL: "localhost:5000"},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFilter_Values(t *testing.T) {
	year := 2024
	month := 3
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{
			name:   "empty filter sends nothing",
			filter: Filter{},
			want:   "",
		},
		{
			name:   "year only",
			filter: Filter{Year: &year},
			want:   "year=2024",
		},
		{
			name:   "month only",
			filter: Filter{Month: &month},
			want:   "month=3",
		},
		{
			name:   "date range",
			filter: Filter{Start: &start, End: &end},
			want:   "end=2024-06-30&start=2024-01-15",
		},
		{
			name:   "all fields",
			filter: Filter{Year: &year, Month: &month, Start: &start, End: &end},
			want:   "end=2024-06-30&month=3&start=2024-01-15&year=2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Values().Encode())
		})
	}
}

func TestFilter_IsZero(t *testing.T) {
	year := 2024
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Year: &year}.IsZero())
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	return client, server
}

func TestClient_AuthStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"authenticated": true,
			"username":      "alice",
		})
	}))

	status, err := client.AuthStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "alice", status.Username)
}

func TestClient_Login_SetsCookieForLaterRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message":  "Login successful",
			"username": "alice",
		})
	})
	mux.HandleFunc("/api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "abc123" {
			_ = json.NewEncoder(w).Encode(map[string]any{"authenticated": false})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"authenticated": true, "username": "alice"})
	})

	client, _ := newTestClient(t, mux)

	username, err := client.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	// The session cookie rides along implicitly.
	status, err := client.AuthStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
}

func TestClient_Analytics_QueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(AnalyticsResult{
			Summary: Summary{Total: 1234.56, TopCategory: "Groceries", PeakDay: "2024-03-01", PeakAmount: 400},
			Monthly: []MonthlyPoint{{MonthYear: "2024-03", Amount: 1234.56}},
			Category: []CategoryTotal{
				{Category: "Groceries", Amount: 800},
				{Category: "Dining Out", Amount: 434.56},
			},
		})
	}))

	year := 2024
	result, err := client.Analytics(context.Background(), Filter{Year: &year})
	require.NoError(t, err)

	assert.Equal(t, "year=2024", gotQuery)
	assert.InDelta(t, 1234.56, result.Summary.Total, 0.001)
	assert.Equal(t, "Groceries", result.Summary.TopCategory)
	require.Len(t, result.Category, 2)
	assert.Equal(t, "Dining Out", result.Category[1].Category)
}

func TestClient_Analytics_EmptyFilterSendsNoParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(AnalyticsResult{})
	}))

	_, err := client.Analytics(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestClient_Analytics_ErrorPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "No dataset uploaded"})
	}))

	_, err := client.Analytics(context.Background(), Filter{})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "No dataset uploaded", apiErr.Message)
	assert.Equal(t, "No dataset uploaded", apiErr.UserMessage("fallback"))
}

func TestClient_ErrorWithoutPayloadFallsBackToStatusText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))

	_, err := client.Analytics(context.Background(), Filter{})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestClient_Upload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()

		assert.Equal(t, "expenses.csv", header.Filename)

		_ = json.NewEncoder(w).Encode(UploadResult{
			Message: "File uploaded successfully",
			Rows:    42,
			Columns: []string{"date", "amount", "category"},
		})
	}))

	result, err := client.Upload(context.Background(), "expenses.csv", strings.NewReader("date,amount\n2024-01-01,10\n"))
	require.NoError(t, err)
	assert.Equal(t, 42, result.Rows)
	assert.Equal(t, []string{"date", "amount", "category"}, result.Columns)
}

func TestClient_Chat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What are my top categories?", body["message"])
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "Top spending categories: Groceries"})
	}))

	reply, err := client.Chat(context.Background(), "What are my top categories?")
	require.NoError(t, err)
	assert.Equal(t, "Top spending categories: Groceries", reply)
}

func TestClient_Summary(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]string{"summary": "Total spending: 99.00"})
	}))

	month := 6
	summary, err := client.Summary(context.Background(), Filter{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, "month=6", gotQuery)
	assert.Equal(t, "Total spending: 99.00", summary)
}

func TestClient_Logout(t *testing.T) {
	var called bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"})
	}))

	require.NoError(t, client.Logout(context.Background()))
	assert.True(t, called)
}
