package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{"map", http.StatusOK, map[string]string{"message": "ok"}, `{"message":"ok"}`},
		{"struct", http.StatusCreated, struct {
			ID string `json:"id"`
		}{ID: "abc"}, `{"id":"abc"}`},
		{"nil body", http.StatusNoContent, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %v, want application/json", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tt.expectedBody {
				t.Errorf("Body = %v, want %v", body, tt.expectedBody)
			}
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusOK {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusNotFound, errors.New("category not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusNotFound)
	}
	if got := decode(t, w); got != "category not found" {
		t.Errorf("error = %q", got)
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{"validation message", http.StatusBadRequest, errors.New("title is required"), 400, "title is required"},
		{"invalid input", http.StatusBadRequest, errors.New("invalid page number"), 400, "invalid page number"},
		{"not found", http.StatusNotFound, errors.New("user not found"), 404, "user not found"},
		{"too long", http.StatusBadRequest, errors.New("title too long"), 400, "title too long"},
		{"unrecognized 4xx", http.StatusConflict, errors.New("pq: duplicate key"), 409, "internal server error"},
		{"500 always generic", http.StatusInternalServerError, errors.New("url is required"), 500, "internal server error"},
		{"secret in 500", http.StatusInternalServerError, errors.New("postgres://u:p@db"), 500, "internal server error"},
		{"app error", http.StatusInternalServerError,
			NewAppError(http.StatusBadGateway, "news provider unavailable", errors.New("gnews: status (HTTP 503)")),
			502, "news provider unavailable"},
		{"wrapped app error", http.StatusInternalServerError,
			fmt.Errorf("page: %w", NewAppError(http.StatusNotFound, "category not found", nil)),
			404, "category not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.expectedCode {
				t.Errorf("Code = %v, want %v", w.Code, tt.expectedCode)
			}
			if got := decode(t, w); got != tt.expectedMsg {
				t.Errorf("Error message = %v, want %v", got, tt.expectedMsg)
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)

	// nil errorの場合、何も書き込まれない
	if w.Body.Len() != 0 {
		t.Errorf("Expected no body for nil error, but got: %v", w.Body.String())
	}
}

func TestAppError(t *testing.T) {
	inner := errors.New("inner error")
	err := NewAppError(500, "Something went wrong", inner)

	if err.Error() != "inner error" {
		t.Errorf("Error() = %v", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the inner error")
	}
	if got := NewAppError(400, "Bad request", nil).Error(); got != "Bad request" {
		t.Errorf("Error() = %v, want Bad request", got)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return body.Error
}
