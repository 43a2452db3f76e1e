package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyDraw_Go/internal/dataset"
	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/mocks"
)

var testSessionID = uuid.MustParse("6f1c4a52-0d7e-4b3a-9a51-2f8e4c1d9b70")

func newTestRouter(svc *mocks.MockRaffleService) http.Handler {
	h := NewSessionHandler(svc, DatasetPaths{
		Participants: "../dataset/testdata/participants.csv",
		Prizes:       "../dataset/testdata/prizes.csv",
	})
	r := chi.NewRouter()
	r.Post("/sessions", h.HandleCreateSession)
	r.Post("/sessions/upload", h.HandleUploadSession)
	r.Get("/sessions/{id}", h.HandleGetSession)
	r.Delete("/sessions/{id}", h.HandleDeleteSession)
	r.Get("/sessions/{id}/groups", h.HandleListGroups)
	r.Post("/sessions/{id}/draws", h.HandleDrawGroup)
	r.Post("/sessions/{id}/draws/next", h.HandleDrawNext)
	r.Get("/sessions/{id}/winners", h.HandleWinners)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionPath(suffix string) string {
	return "/sessions/" + testSessionID.String() + suffix
}

func TestHandleCreateSession(t *testing.T) {
	summary := &domain.SessionSummary{SessionID: testSessionID, RemainingParticipants: 2, RemainingPrizes: 1}

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*mocks.MockRaffleService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Inline datasets",
			reqBody: CreateSessionRequest{
				Participants: []ParticipantInput{{Name: " Alice "}, {Name: "Bob"}},
				Prizes:       []PrizeInput{{Group: "Gold", Prize: "Laptop"}},
			},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("CreateSession", mock.Anything,
					mock.MatchedBy(func(p []domain.Participant) bool {
						return len(p) == 2 && p[0].Name == "Alice" && p[0].ID != uuid.Nil && p[0].ID != p[1].ID
					}),
					[]domain.Prize{{Group: "Gold", Prize: "Laptop"}},
				).Return(summary, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   testSessionID.String(),
		},
		{
			name:    "Default datasets",
			reqBody: CreateSessionRequest{UseDefaultDatasets: true},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("CreateSession", mock.Anything,
					mock.MatchedBy(func(p []domain.Participant) bool { return len(p) > 0 }),
					mock.MatchedBy(func(p []domain.Prize) bool { return len(p) > 0 }),
				).Return(summary, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			setupMocks:     func(m *mocks.MockRaffleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing datasets",
			reqBody:        CreateSessionRequest{},
			setupMocks:     func(m *mocks.MockRaffleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"participants":"This field is required"`,
		},
		{
			name: "Blank prize group",
			reqBody: CreateSessionRequest{
				Participants: []ParticipantInput{{Name: "Alice"}},
				Prizes:       []PrizeInput{{Group: "  ", Prize: "Laptop"}},
			},
			setupMocks:     func(m *mocks.MockRaffleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"prizes[0].group":"Must not be blank"`,
		},
		{
			name:           "Bad session id",
			reqBody:        CreateSessionRequest{SessionID: "abc", UseDefaultDatasets: true},
			setupMocks:     func(m *mocks.MockRaffleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"session_id":"Must be a UUID"`,
		},
		{
			name: "Service rejects dataset",
			reqBody: CreateSessionRequest{
				Participants: []ParticipantInput{{Name: "Alice"}},
				Prizes:       []PrizeInput{{Group: "Gold", Prize: "Laptop"}},
			},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: prizes dataset is empty", domain.ErrInvalidDataset))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid dataset: prizes dataset is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRaffleService(t)
			tt.setupMocks(svc)

			w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleCreateSession_WithSessionID(t *testing.T) {
	for _, created := range []bool{true, false} {
		t.Run(fmt.Sprintf("created=%v", created), func(t *testing.T) {
			svc := mocks.NewMockRaffleService(t)
			svc.On("InitSession", mock.Anything, testSessionID, mock.Anything).
				Return(&domain.SessionSummary{SessionID: testSessionID}, created, nil)

			w := doJSON(t, newTestRouter(svc), http.MethodPost, "/sessions",
				CreateSessionRequest{SessionID: testSessionID.String(), UseDefaultDatasets: true})

			want := http.StatusOK
			if created {
				want = http.StatusCreated
			}
			assert.Equal(t, want, w.Code)
		})
	}
}

func TestHandleUploadSession(t *testing.T) {
	build := func(files map[string]string) *http.Request {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for field, content := range files {
			fw, err := mw.CreateFormFile(field, field+".csv")
			require.NoError(t, err)
			_, _ = fw.Write([]byte(content))
		}
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/sessions/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	t.Run("creates session", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		svc.On("CreateSession", mock.Anything,
			mock.MatchedBy(func(p []domain.Participant) bool { return len(p) == 2 && p[1].Name == "Bob" }),
			[]domain.Prize{{Group: "Gold", Prize: "Laptop"}},
		).Return(&domain.SessionSummary{SessionID: testSessionID}, nil)

		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, build(map[string]string{
			FormFieldParticipants: "Name\nAlice\nBob\n",
			FormFieldPrizes:       "Group,Prize\nGold,Laptop\n",
		}))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing prizes file", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, build(map[string]string{FormFieldParticipants: "Name\nAlice\n"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(ErrMsgMissingUploadFile, FormFieldPrizes))
	})

	t.Run("bad dataset", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, build(map[string]string{
			FormFieldParticipants: "Team\nRed\n",
			FormFieldPrizes:       "Group,Prize\nGold,Laptop\n",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dataset.ErrMsgMissingColumn)
	})
}

func TestHandleDrawGroup(t *testing.T) {
	outcome := &domain.GroupDrawOutcome{
		Group: "Silver",
		Winners: []domain.WinnerRecord{
			{SequenceNumber: 1, ParticipantName: "Bob", PrizeName: "Mug", Group: "Silver"},
			{SequenceNumber: 2, ParticipantName: "Dan", PrizeName: "Pen", Group: "Silver"},
		},
	}

	tests := []struct {
		name           string
		path           string
		reqBody        interface{}
		setupMocks     func(*mocks.MockRaffleService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			path:    sessionPath("/draws"),
			reqBody: DrawRequest{Group: "Silver"},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("DrawGroup", mock.Anything, testSessionID, "Silver").Return(outcome, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"participant_name":"Dan"`,
		},
		{
			name:    "Padded group name",
			path:    sessionPath("/draws"),
			reqBody: DrawRequest{Group: " Silver\t"},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("DrawGroup", mock.Anything, testSessionID, "Silver").Return(outcome, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"participant_name":"Dan"`,
		},
		{
			name:    "Exhausted group",
			path:    sessionPath("/draws"),
			reqBody: DrawRequest{Group: "Gold"},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("DrawGroup", mock.Anything, testSessionID, "Gold").
					Return(nil, fmt.Errorf("failed to draw group: %w", domain.ErrUnknownOrExhaustedGroup))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgGroupUnavailableError,
		},
		{
			name:    "Insufficient participants",
			path:    sessionPath("/draws"),
			reqBody: DrawRequest{Group: "Gold"},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("DrawGroup", mock.Anything, testSessionID, "Gold").Return(nil, domain.ErrInsufficientParticipants)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgNotEnoughPeopleError,
		},
		{
			name:    "Session expired",
			path:    sessionPath("/draws"),
			reqBody: DrawRequest{Group: "Gold"},
			setupMocks: func(m *mocks.MockRaffleService) {
				m.On("DrawGroup", mock.Anything, testSessionID, "Gold").Return(nil, domain.ErrSessionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgSessionNotFoundError,
		},
		{
			name:           "Missing group",
			path:           sessionPath("/draws"),
			reqBody:        DrawRequest{},
			setupMocks:     func(m *mocks.MockRaffleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"group":"This field is required"`,
		},
		{
			name:           "Bad session id",
			path:           "/sessions/not-a-uuid/draws",
			reqBody:        DrawRequest{Group: "Gold"},
			setupMocks:     func(m *mocks.MockRaffleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidSessionID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRaffleService(t)
			tt.setupMocks(svc)

			w := doJSON(t, newTestRouter(svc), http.MethodPost, tt.path, tt.reqBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleDrawNext(t *testing.T) {
	svc := mocks.NewMockRaffleService(t)
	svc.On("DrawNext", mock.Anything, testSessionID, "Silver").Return(&domain.PrizeDrawOutcome{
		Group:      "Silver",
		Winner:     domain.WinnerRecord{SequenceNumber: 1, ParticipantName: "Bob"},
		PrizesLeft: 1,
	}, nil).Once()
	svc.On("DrawNext", mock.Anything, testSessionID, "Gold").Return(nil, domain.ErrGroupInProgress).Once()

	router := newTestRouter(svc)

	w := doJSON(t, router, http.MethodPost, sessionPath("/draws/next"), DrawRequest{Group: "Silver"})
	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.PrizeDrawOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.PrizesLeft)
	assert.False(t, got.GroupCompleted)

	w = doJSON(t, router, http.MethodPost, sessionPath("/draws/next"), DrawRequest{Group: "Gold "})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgGroupInProgressError)
}

func TestHandleGetSessionAndGroups(t *testing.T) {
	svc := mocks.NewMockRaffleService(t)
	svc.On("Summary", mock.Anything, testSessionID).Return(&domain.SessionSummary{
		SessionID:       testSessionID,
		WinnerCount:     1,
		InProgressGroup: "Silver",
	}, nil)
	svc.On("ListGroups", mock.Anything, testSessionID).Return([]string{"Gold", "Silver"}, nil)

	router := newTestRouter(svc)

	w := doJSON(t, router, http.MethodGet, sessionPath(""), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"in_progress_group":"Silver"`)

	w = doJSON(t, router, http.MethodGet, sessionPath("/groups"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var groups GroupsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	assert.Equal(t, []string{"Gold", "Silver"}, groups.Groups)
}

func TestHandleDeleteSession(t *testing.T) {
	svc := mocks.NewMockRaffleService(t)
	svc.On("DeleteSession", mock.Anything, testSessionID).Return(nil).Once()
	svc.On("DeleteSession", mock.Anything, testSessionID).Return(domain.ErrSessionNotFound).Once()

	router := newTestRouter(svc)

	w := doJSON(t, router, http.MethodDelete, sessionPath(""), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgSessionDeleted)

	w = doJSON(t, router, http.MethodDelete, sessionPath(""), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleWinners(t *testing.T) {
	at := time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC)
	ledger := []domain.WinnerRecord{
		{SequenceNumber: 1, ParticipantName: "Bob", PrizeName: "Laptop", Group: "Gold", DrawnAt: at},
	}

	t.Run("json", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		svc.On("Winners", mock.Anything, testSessionID).Return(ledger, nil)

		w := doJSON(t, newTestRouter(svc), http.MethodGet, sessionPath("/winners"), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var got WinnersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, ledger, got.Winners)
	})

	t.Run("empty ledger is an empty array", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		svc.On("Winners", mock.Anything, testSessionID).Return(nil, nil)

		w := doJSON(t, newTestRouter(svc), http.MethodGet, sessionPath("/winners"), nil)
		assert.Contains(t, w.Body.String(), `"winners":[]`)
	})

	t.Run("csv", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		svc.On("Winners", mock.Anything, testSessionID).Return(ledger, nil)

		w := doJSON(t, newTestRouter(svc), http.MethodGet, sessionPath("/winners?format=csv"), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), testSessionID.String())

		rows, err := csv.NewReader(w.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Bob", rows[1][3])
	})

	t.Run("bad format", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		w := doJSON(t, newTestRouter(svc), http.MethodGet, sessionPath("/winners?format=xml"), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid format 'xml'")
	})
}
