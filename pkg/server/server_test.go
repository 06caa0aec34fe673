package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pm-tools/project-pulse/pkg/models/api"
	"github.com/pm-tools/project-pulse/pkg/models/domain"
	"github.com/pm-tools/project-pulse/pkg/models/store"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *mockExplorer) GetProjectAnalytics(
	ctx context.Context,
	projectCode string,
) (*domain.ProjectAnalytics, error) {
	args := m.Called(ctx, projectCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectAnalytics), args.Error(1)
}

func (m *mockExplorer) ResetCapability() {
	m.Called()
}

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) Start(ctx context.Context, project string) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockSnapshots) Cancel(ctx context.Context, project string) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Add(ctx context.Context, snapshot store.AnalyticsSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *mockHistory) Latest(ctx context.Context, project string) (*store.AnalyticsSnapshot, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.AnalyticsSnapshot), args.Error(1)
}

func (m *mockHistory) Prune(ctx context.Context, project string, before time.Time) (int64, error) {
	args := m.Called(ctx, project, before)
	return args.Get(0).(int64), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	generatedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mockExp := new(mockExplorer)
	mockSnap := new(mockSnapshots)
	mockHist := new(mockHistory)

	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Explorer:  mockExp,
			Snapshots: mockSnap,
			History:   mockHist,
			Logger:    logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:   "ListProjects",
			method: http.MethodGet,
			path:   "/api/v1/projects",
			setupMocks: func() {
				mockExp.On("ListProjects", mock.Anything).
					Return([]domain.Project{{Code: "PRJ-1", Description: "Website revamp"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Project{{Code: "PRJ-1", Description: "Website revamp"}},
			parseResponse:  unmarshalResponse[[]api.Project](),
		},
		{
			name:   "GetProjectAnalytics",
			method: http.MethodGet,
			path:   "/api/v1/projects/PRJ-1/analytics",
			setupMocks: func() {
				mockExp.On("GetProjectAnalytics", mock.Anything, "PRJ-1").
					Return(&domain.ProjectAnalytics{
						ProjectCode:   "PRJ-1",
						HoursSpent:    12,
						BillingMode:   domain.BillingTimeAndMaterials,
						ResourceCount: 1,
						GeneratedAt:   generatedAt,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.ProjectAnalytics{
				ProjectCode:   "PRJ-1",
				HoursSpent:    12,
				BillingMode:   "time_and_materials",
				Weekly:        []api.WeeklyBucket{},
				Tasks:         []api.TaskBreakdown{},
				Members:       []api.MemberBreakdown{},
				ResourceCount: 1,
				GeneratedAt:   generatedAt,
			},
			parseResponse: unmarshalResponse[api.ProjectAnalytics](),
		},
		{
			name:   "GetProjectAnalytics_UpstreamFailure",
			method: http.MethodGet,
			path:   "/api/v1/projects/PRJ-DOWN/analytics",
			setupMocks: func() {
				mockExp.On("GetProjectAnalytics", mock.Anything, "PRJ-DOWN").
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusBadGateway,
			expected:       "failed to assemble project analytics\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "StartSnapshots",
			method: http.MethodPost,
			path:   "/api/v1/projects/PRJ-1/snapshots",
			setupMocks: func() {
				mockSnap.On("Start", mock.Anything, "PRJ-1").Return(nil)
			},
			expectedStatus: http.StatusAccepted,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "LatestSnapshot",
			method: http.MethodGet,
			path:   "/api/v1/projects/PRJ-1/snapshots/latest",
			setupMocks: func() {
				mockHist.On("Latest", mock.Anything, "PRJ-1").
					Return(&store.AnalyticsSnapshot{
						Project:    "PRJ-1",
						CapturedAt: generatedAt,
						Payload:    []byte(`{"project_code":"PRJ-1"}`),
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       `{"project_code":"PRJ-1"}`,
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "LatestSnapshot_NoneCaptured",
			method: http.MethodGet,
			path:   "/api/v1/projects/PRJ-EMPTY/snapshots/latest",
			setupMocks: func() {
				mockHist.On("Latest", mock.Anything, "PRJ-EMPTY").Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expected:       "no snapshots captured\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "CancelSnapshots_NotRunning",
			method: http.MethodDelete,
			path:   "/api/v1/projects/PRJ-2/snapshots",
			setupMocks: func() {
				mockSnap.On("Cancel", mock.Anything, "PRJ-2").Return(assert.AnError)
			},
			expectedStatus: http.StatusNotFound,
			expected:       assert.AnError.Error() + "\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, nil)
			require.NoError(t, err, "Failed to build request")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
