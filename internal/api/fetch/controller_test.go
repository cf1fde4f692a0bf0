package fetch_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Trawl/internal/api/fetch"
	"github.com/hbomb79/Trawl/internal/fetcher"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFetchService struct {
	mock.Mock
}

func (m *mockFetchService) FetchVideosFromURL(_ context.Context, url string) (*fetcher.FetchResult, error) {
	args := m.Called(url)
	if v, ok := args.Get(0).(*fetcher.FetchResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func performFetch(service fetch.Service, body string) *httptest.ResponseRecorder {
	server := echo.New()
	fetch.New(validator.New(), service).SetRoutes(server.Group(""))

	req := httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func Test_Fetch_ReturnsResultEnvelope(t *testing.T) {
	service := &mockFetchService{}
	service.On("FetchVideosFromURL", "https://example.com/page").Return(&fetcher.FetchResult{
		URL:         "https://example.com/page",
		Videos:      []fetcher.VideoRecord{{URL: "https://example.com/v.mp4", Method: fetcher.MethodHTMLVideoTag}},
		Errors:      []string{},
		MethodsUsed: []string{"html_parsing"},
	}, nil)

	rec := performFetch(service, `{"url": "https://example.com/page"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "https://example.com/page", envelope["url"])
	assert.Len(t, envelope["videos"], 1)
	assert.Equal(t, []interface{}{"html_parsing"}, envelope["methods_used"])
}

func Test_Fetch_TrimsSurroundingWhitespace(t *testing.T) {
	service := &mockFetchService{}
	service.On("FetchVideosFromURL", "https://example.com/page").Return(&fetcher.FetchResult{}, nil)

	rec := performFetch(service, `{"url": "  https://example.com/page  "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func Test_Fetch_MissingURLIsBadRequest(t *testing.T) {
	service := &mockFetchService{}

	for _, body := range []string{`{}`, `{"url": ""}`, `{"url": "   "}`, `not json`} {
		rec := performFetch(service, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.JSONEq(t, `{"error": "URL is required"}`, rec.Body.String())
	}
	service.AssertNotCalled(t, "FetchVideosFromURL", mock.Anything)
}

func Test_Fetch_InvalidURLIsBadRequest(t *testing.T) {
	service := &mockFetchService{}
	service.On("FetchVideosFromURL", "not-a-url").
		Return(nil, fmt.Errorf("%w: not-a-url", fetcher.ErrInvalidURL))

	rec := performFetch(service, `{"url": "not-a-url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Fetch_PipelineFailureIsInternalError(t *testing.T) {
	service := &mockFetchService{}
	service.On("FetchVideosFromURL", mock.Anything).Return(nil, errors.New("boom"))

	rec := performFetch(service, `{"url": "https://example.com/page"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "boom"}`, rec.Body.String())
}
