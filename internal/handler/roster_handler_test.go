package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rollcall/internal/domain"
	"rollcall/internal/handler"
	"rollcall/mocks"
)

func newRosterHandler() (*handler.RosterHandler, *mocks.MockRosterService) {
	mockSvc := new(mocks.MockRosterService)
	return handler.NewRosterHandler(mockSvc), mockSvc
}

func jsonContext(w *httptest.ResponseRecorder, method, target string, body interface{}) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	data, _ := json.Marshal(body)
	c.Request, _ = http.NewRequest(method, target, bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestRosterHandler_List(t *testing.T) {
	h, mockSvc := newRosterHandler()
	mockSvc.On("List", mock.Anything).Return([]domain.PersonKey{smith, doe}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/roster", http.NoBody)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []domain.PersonKey `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []domain.PersonKey{smith, doe}, resp.Data)
}

func TestRosterHandler_List_Unavailable(t *testing.T) {
	h, mockSvc := newRosterHandler()
	mockSvc.On("List", mock.Anything).Return(nil, domain.ErrRosterUnavailable)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/roster", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRosterHandler_Add(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		svcErr   error
		callsSvc bool
		wantCode int
	}{
		{name: "created", body: map[string]string{"name": "Smith, John"}, callsSvc: true, wantCode: http.StatusCreated},
		{name: "duplicate", body: map[string]string{"name": "Smith, John"}, svcErr: domain.ErrDuplicatePerson, callsSvc: true, wantCode: http.StatusConflict},
		{name: "invalid name", body: map[string]string{"name": "Smith, John"}, svcErr: domain.ErrInvalidPersonName, callsSvc: true, wantCode: http.StatusBadRequest},
		{name: "missing name", body: map[string]string{}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newRosterHandler()
			if tt.callsSvc {
				mockSvc.On("Add", mock.Anything, "Smith, John").Return(smith, tt.svcErr)
			}

			w := httptest.NewRecorder()
			h.Add(jsonContext(w, http.MethodPost, "/api/v1/roster", tt.body))

			assert.Equal(t, tt.wantCode, w.Code)
			if !tt.callsSvc {
				mockSvc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRosterHandler_Remove(t *testing.T) {
	h, mockSvc := newRosterHandler()
	mockSvc.On("Remove", mock.Anything, "Doe, Jane").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/roster?name="+url.QueryEscape("Doe, Jane"), http.NoBody)

	h.Remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRosterHandler_Remove_Errors(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		h, _ := newRosterHandler()
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/roster", http.NoBody)

		h.Remove(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not on roster", func(t *testing.T) {
		h, mockSvc := newRosterHandler()
		mockSvc.On("Remove", mock.Anything, "Doe, Jane").Return(domain.ErrNotFound)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/roster?name="+url.QueryEscape("Doe, Jane"), http.NoBody)

		h.Remove(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRosterHandler_Replace(t *testing.T) {
	h, mockSvc := newRosterHandler()
	names := []string{"Smith, John", "Doe, Jane"}
	mockSvc.On("Replace", mock.Anything, names).Return([]domain.PersonKey{smith, doe}, nil)

	w := httptest.NewRecorder()
	h.Replace(jsonContext(w, http.MethodPut, "/api/v1/roster", map[string][]string{"names": names}))

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRosterHandler_Replace_Empty(t *testing.T) {
	h, mockSvc := newRosterHandler()
	mockSvc.On("Replace", mock.Anything, []string(nil)).Return(nil, nil)

	w := httptest.NewRecorder()
	h.Replace(jsonContext(w, http.MethodPut, "/api/v1/roster", map[string]interface{}{}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "data": []}`, w.Body.String())
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrNoDocuments, http.StatusBadRequest, "NO_DOCUMENTS"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrInvalidWeek, http.StatusBadRequest, "INVALID_WEEK"},
		{domain.ErrInvalidPersonName, http.StatusBadRequest, "INVALID_NAME"},
		{domain.ErrDuplicatePerson, http.StatusConflict, "DUPLICATE_PERSON"},
		{domain.ErrMalformedTable, http.StatusUnprocessableEntity, "MALFORMED_REPORT"},
		{domain.ErrRosterLoad, http.StatusServiceUnavailable, "ROSTER_LOAD_FAILED"},
		{domain.ErrRosterUnavailable, http.StatusServiceUnavailable, "ROSTER_UNAVAILABLE"},
		{domain.ErrRosterSave, http.StatusInternalServerError, "ROSTER_SAVE_FAILED"},
		{fmt.Errorf("loading roster: %w", domain.ErrRosterUnavailable), http.StatusServiceUnavailable, "ROSTER_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
