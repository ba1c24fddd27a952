package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estagios/internal/delivery/http/middleware"
	"estagios/internal/domain/matching"
	"estagios/internal/domain/proposal"
	"estagios/internal/domain/user"
	"estagios/internal/pkg/jwt"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = jwt.NewHMACService("handler-access", "handler-refresh", time.Minute, time.Hour)

func tokenFor(t *testing.T, id uuid.UUID, role user.Role) string {
	t.Helper()
	tok, err := testJWT.GenerateAccessToken(id, string(role)+"@uni.pt", role)
	require.NoError(t, err)
	return tok
}

// newTestApp mounts register behind the error and auth middleware, the same
// order the server uses.
func newTestApp(register func(r fiber.Router), roles ...user.Role) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	handlers := []any{middleware.NewAuthMiddleware(testJWT).Middleware()}
	if len(roles) > 0 {
		handlers = append(handlers, middleware.RequireRoles(roles...))
	}
	register(app.Group("", handlers...))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, b
}

type stubMatching struct {
	matches []matching.Match
	err     error
	gotID   uuid.UUID
}

func (s *stubMatching) ListCompatible(_ context.Context, id uuid.UUID) ([]matching.Match, error) {
	s.gotID = id
	return s.matches, s.err
}

func TestMatchHandler_ListCompatible(t *testing.T) {
	studentID := uuid.New()
	p := proposal.Proposal{ID: uuid.New(), Title: "Estágio Web", State: proposal.StateActive, Areas: []string{"Informática", "Gestão"}}
	stub := &stubMatching{matches: []matching.Match{{Proposal: p, MatchedTags: []string{"Informática"}}}}
	app := newTestApp(NewMatchHandler(stub).RegisterRoutes, user.RoleEstudante)

	status, body := do(t, app, http.MethodGet, "/propostas/compativeis", tokenFor(t, studentID, user.RoleEstudante), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, studentID, stub.gotID)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 1)
	assert.Equal(t, p.ID.String(), out[0]["id"])
	assert.Equal(t, []any{"Informática"}, out[0]["areas"])
	assert.Equal(t, []any{"Informática", "Gestão"}, out[0]["areas_requeridas"])
}

func TestMatchHandler_EmptyResultIsBareArray(t *testing.T) {
	app := newTestApp(NewMatchHandler(&stubMatching{matches: []matching.Match{}}).RegisterRoutes, user.RoleEstudante)

	status, body := do(t, app, http.MethodGet, "/propostas/compativeis", tokenFor(t, uuid.New(), user.RoleEstudante), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestMatchHandler_FailureReturnsSingleCondition(t *testing.T) {
	stub := &stubMatching{err: fmt.Errorf("%w: %w", usecase.ErrCompatibleProposalsUnavailable, errors.New("db down"))}
	app := newTestApp(NewMatchHandler(stub).RegisterRoutes, user.RoleEstudante)

	status, body := do(t, app, http.MethodGet, "/propostas/compativeis", tokenFor(t, uuid.New(), user.RoleEstudante), "")
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var env response.SemanticResponse
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, "failed to load compatible proposals", env.Message)
	assert.NotContains(t, string(body), "db down")
}

func TestMatchHandler_RequiresStudent(t *testing.T) {
	app := newTestApp(NewMatchHandler(&stubMatching{}).RegisterRoutes, user.RoleEstudante)

	status, _ := do(t, app, http.MethodGet, "/propostas/compativeis", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodGet, "/propostas/compativeis", tokenFor(t, uuid.New(), user.RoleEmpresa), "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

type stubProposals struct {
	usecase.ProposalUsecase
	listFilter proposal.Filter
	created    usecase.ProposalInput
	err        error
	stateID    uuid.UUID
	state      string
}

func (s *stubProposals) List(_ context.Context, _ usecase.Actor, f proposal.Filter) ([]proposal.Proposal, error) {
	s.listFilter = f
	return []proposal.Proposal{}, s.err
}

func (s *stubProposals) Create(_ context.Context, a usecase.Actor, in usecase.ProposalInput) (proposal.Proposal, error) {
	s.created = in
	if s.err != nil {
		return proposal.Proposal{}, s.err
	}
	return proposal.Proposal{ID: uuid.New(), CompanyID: a.UserID, Title: in.Title, Areas: in.Areas, State: proposal.StatePending}, nil
}

func (s *stubProposals) ChangeState(_ context.Context, _ usecase.Actor, id uuid.UUID, state string) (proposal.Proposal, error) {
	s.stateID, s.state = id, state
	if s.err != nil {
		return proposal.Proposal{}, s.err
	}
	return proposal.Proposal{ID: id, State: proposal.State(state)}, nil
}

func TestProposalHandler_ListParsesFilter(t *testing.T) {
	stub := &stubProposals{}
	app := newTestApp(NewProposalHandler(stub).RegisterRoutes)
	tok := tokenFor(t, uuid.New(), user.RoleAdmin)

	status, body := do(t, app, http.MethodGet, "/propostas?estado=ativo&departamento=Gest%C3%A3o", tok, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
	assert.Equal(t, proposal.Filter{State: proposal.StateActive, Department: "Gestão"}, stub.listFilter)

	status, _ = do(t, app, http.MethodGet, "/propostas?estado=publicado", tok, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestProposalHandler_CreateOnlyForCompanies(t *testing.T) {
	stub := &stubProposals{}
	app := newTestApp(NewProposalHandler(stub).RegisterRoutes)
	body := `{"titulo":"Backend","tipo":"estagio","departamento":"Informática","areas":["Go","SQL"]}`

	status, _ := do(t, app, http.MethodPost, "/propostas", tokenFor(t, uuid.New(), user.RoleEstudante), body)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, res := do(t, app, http.MethodPost, "/propostas", tokenFor(t, uuid.New(), user.RoleEmpresa), body)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, []string{"Go", "SQL"}, stub.created.Areas)

	var out map[string]any
	require.NoError(t, json.Unmarshal(res, &out))
	assert.Equal(t, "pendente", out["estado"])
	assert.Equal(t, "Backend", out["titulo"])
}

func TestProposalHandler_ChangeState(t *testing.T) {
	stub := &stubProposals{}
	app := newTestApp(NewProposalHandler(stub).RegisterRoutes)
	id := uuid.New()
	path := "/propostas/" + id.String() + "/estado"

	status, _ := do(t, app, http.MethodPatch, path, tokenFor(t, uuid.New(), user.RoleEmpresa), `{"estado":"ativo"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = do(t, app, http.MethodPatch, path, tokenFor(t, uuid.New(), user.RoleGestor), `{"estado":"ativo"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, id, stub.stateID)
	assert.Equal(t, "ativo", stub.state)

	stub.err = usecase.ErrInvalidTransition
	status, _ = do(t, app, http.MethodPatch, path, tokenFor(t, uuid.New(), user.RoleAdmin), `{"estado":"pendente"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, http.MethodPatch, "/propostas/not-a-uuid/estado", tokenFor(t, uuid.New(), user.RoleAdmin), `{"estado":"ativo"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

type stubFavorites struct {
	err error
}

func (s stubFavorites) List(context.Context, uuid.UUID) ([]proposal.Proposal, error) {
	return []proposal.Proposal{{ID: uuid.New(), State: proposal.StateArchived}}, s.err
}
func (s stubFavorites) Add(context.Context, uuid.UUID, uuid.UUID) error    { return s.err }
func (s stubFavorites) Remove(context.Context, uuid.UUID, uuid.UUID) error { return s.err }

func TestFavoriteHandler(t *testing.T) {
	tok := tokenFor(t, uuid.New(), user.RoleEstudante)
	path := "/favoritos/" + uuid.NewString()

	app := newTestApp(NewFavoriteHandler(stubFavorites{}).RegisterRoutes, user.RoleEstudante)
	status, _ := do(t, app, http.MethodPost, path, tok, "")
	assert.Equal(t, fiber.StatusCreated, status)
	status, body := do(t, app, http.MethodGet, "/favoritos", tok, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"estado":"arquivado"`)

	app = newTestApp(NewFavoriteHandler(stubFavorites{err: usecase.ErrProposalNotActive}).RegisterRoutes, user.RoleEstudante)
	status, _ = do(t, app, http.MethodPost, path, tok, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	app = newTestApp(NewFavoriteHandler(stubFavorites{err: usecase.ErrFavoriteNotFound}).RegisterRoutes, user.RoleEstudante)
	status, _ = do(t, app, http.MethodDelete, path, tok, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
