package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/serverutils"
	"rag-assistant-be/pkg/loader"
	"rag-assistant-be/pkg/rag/profile"
	"rag-assistant-be/pkg/rag/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRagService struct {
	sessionId string
	history   []session.Turn
	documents map[string][]session.DocumentMeta
	queryErr  error
}

func newStubRagService() *stubRagService {
	return &stubRagService{
		sessionId: "session-1",
		documents: make(map[string][]session.DocumentMeta),
	}
}

func (s *stubRagService) Initialize(ctx context.Context) error { return nil }

func (s *stubRagService) IngestDocuments(ctx context.Context, files []loader.UploadedFile) (int, error) {
	return len(files), nil
}

func (s *stubRagService) Query(ctx context.Context, question string) (*dto.QueryResponse, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return &dto.QueryResponse{Answer: "answer to " + question, Sources: []string{"notes.txt"}}, nil
}

func (s *stubRagService) SwitchProfile(name string) error {
	if _, err := profile.ByName(name); err != nil {
		return err
	}
	return nil
}

func (s *stubRagService) SwitchModel(provider string) error { return nil }

func (s *stubRagService) StartNewConversation(ctx context.Context) (string, error) {
	s.sessionId = "session-new"
	return s.sessionId, nil
}

func (s *stubRagService) SwitchConversation(ctx context.Context, sessionId string) error {
	s.sessionId = sessionId
	return nil
}

func (s *stubRagService) CurrentSessionId() string { return s.sessionId }

func (s *stubRagService) ListSessions(ctx context.Context) ([]string, error) {
	return []string{s.sessionId}, nil
}

func (s *stubRagService) GetDocumentNames(ctx context.Context, sessionId string) ([]session.DocumentMeta, error) {
	return s.documents[sessionId], nil
}

func (s *stubRagService) GetConversationHistory(ctx context.Context) ([]session.Turn, error) {
	return s.history, nil
}

func newTestApp(svc *stubRagService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api)
	NewSessionController(svc).RegisterRoutes(api)
	NewDocumentController(svc, "/tmp/uploads-test").RegisterRoutes(api)
	return app
}

func TestQueryEndpoint(t *testing.T) {
	app := newTestApp(newStubRagService())

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(`{"question":"what?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out serverutils.BaseResponse[dto.QueryResponse]
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "answer to what?", out.Data.Answer)
	assert.Equal(t, []string{"notes.txt"}, out.Data.Sources)
}

func TestQueryEndpointMissingQuestion(t *testing.T) {
	app := newTestApp(newStubRagService())

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSwitchProfileEndpointUnknownProfile(t *testing.T) {
	app := newTestApp(newStubRagService())

	req := httptest.NewRequest("POST", "/api/switch-profile", strings.NewReader(`{"profile":"Pirate"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out serverutils.BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out.Message, "Pirate")
}

func TestNewConversationEndpoint(t *testing.T) {
	svc := newStubRagService()
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/new-conversation", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out serverutils.BaseResponse[dto.NewConversationResponse]
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "session-new", out.Data.SessionId)
}

func TestSwitchConversationEndpoint(t *testing.T) {
	svc := newStubRagService()
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/switch-conversation/other-session", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "other-session", svc.sessionId)
}

func TestListDocumentsEndpoint(t *testing.T) {
	svc := newStubRagService()
	svc.documents["s1"] = []session.DocumentMeta{{FileName: "notes.txt", FilePath: "/uploads/x"}}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/documents/s1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out serverutils.BaseResponse[dto.ListDocumentsResponse]
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Data.Documents, 1)
	assert.Equal(t, "notes.txt", out.Data.Documents[0].FileName)
}

func TestHistoryEndpoint(t *testing.T) {
	svc := newStubRagService()
	svc.history = []session.Turn{{Question: "q", Answer: "a"}}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out serverutils.BaseResponse[dto.ConversationHistoryResponse]
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Data.History, 1)
	assert.Equal(t, "q", out.Data.History[0].Question)
}

func TestUploadEndpointRequiresMultipart(t *testing.T) {
	app := newTestApp(newStubRagService())

	req := httptest.NewRequest("POST", "/api/upload", strings.NewReader("not multipart"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
