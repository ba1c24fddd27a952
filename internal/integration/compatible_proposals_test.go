package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"estagios/internal/app"
	"estagios/internal/config"
	"estagios/internal/database"
	"estagios/internal/database/migration"
	dbpostgres "estagios/internal/database/postgres"
	"estagios/internal/database/seeder"
	"estagios/internal/pkg/jwt"
	"estagios/internal/ws"
	"estagios/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "segredo-123"

type authBody struct {
	AccessToken string `json:"access_token"`
}

type proposalBody struct {
	ID              uuid.UUID `json:"id"`
	Titulo          string    `json:"titulo"`
	Estado          string    `json:"estado"`
	Areas           []string  `json:"areas"`
	AreasRequeridas []string  `json:"areas_requeridas"`
}

func TestIntegration_CompatibleProposals(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	require.NoError(t, migration.Runner{FS: migrations.FS}.Up(ctx, db.SQLDB()))

	suffix := uuid.NewString()[:8]
	adminEmail := "admin-" + suffix + "@test.local"
	emails := []string{
		adminEmail,
		"gestor-" + suffix + "@test.local",
		"empresa-" + suffix + "@test.local",
		"aluno-" + suffix + "@test.local",
	}
	defer cleanupUsers(t, db, emails)

	seeders := seeder.Defaults(config.SeedConfig{AdminEmail: adminEmail, AdminPassword: testPassword, AdminName: "Admin"})
	require.NoError(t, seeder.Runner{Seeders: seeders}.Run(ctx, db))

	fapp := newTestApp(t, db)

	adminTok := login(t, fapp, adminEmail)

	status, _ := call(t, fapp, http.MethodPost, "/admin/gestores", adminTok, map[string]any{
		"email": emails[1], "password": testPassword, "nome": "Gestor", "departamento": "Informática",
	})
	require.Equal(t, fiber.StatusCreated, status)
	gestorTok := login(t, fapp, emails[1])

	status, body := call(t, fapp, http.MethodPost, "/auth/register", "", map[string]any{
		"email": emails[2], "password": testPassword, "nome": "Ana", "role": "empresa", "nome_empresa": "Acme",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	empresaTok := decodeToken(t, body)

	status, body = call(t, fapp, http.MethodPost, "/auth/register", "", map[string]any{
		"email": emails[3], "password": testPassword, "nome": "Rui", "role": "estudante",
		"curso": "Engenharia Informática", "competencias": "Go; SQL",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	alunoTok := decodeToken(t, body)

	goDocker := createProposal(t, fapp, empresaTok, "Backend", []string{"Go", "Docker"})
	java := createProposal(t, fapp, empresaTok, "Java", []string{"Java"})
	pending := createProposal(t, fapp, empresaTok, "Dados", []string{"SQL"})

	for _, id := range []uuid.UUID{goDocker, java} {
		status, body = call(t, fapp, http.MethodPatch, "/propostas/"+id.String()+"/estado", gestorTok, map[string]any{"estado": "ativo"})
		require.Equal(t, fiber.StatusOK, status, string(body))
	}

	status, body = call(t, fapp, http.MethodGet, "/estudante/propostas/compativeis", alunoTok, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var got []proposalBody
	require.NoError(t, json.Unmarshal(body, &got))

	ids := map[uuid.UUID]proposalBody{}
	for _, p := range got {
		ids[p.ID] = p
	}
	require.Contains(t, ids, goDocker)
	assert.NotContains(t, ids, java)
	assert.NotContains(t, ids, pending)
	assert.Equal(t, []string{"Go"}, ids[goDocker].Areas)
	assert.Equal(t, []string{"Go", "Docker"}, ids[goDocker].AreasRequeridas)
	assert.Equal(t, "ativo", ids[goDocker].Estado)

	status, _ = call(t, fapp, http.MethodGet, "/estudante/propostas/compativeis", empresaTok, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := dbpostgres.ConnectDSN(ctx, dsn, config.DatabaseConfig{})
	require.NoError(t, err)
	return db
}

func newTestApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	c := &app.Container{
		Config: config.Config{App: config.AppConfig{AppName: "estagios-test", HTTPPort: "0", WSPort: "0"}},
		Logger: logger,
		DB:     db,
		JWT:    jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour),
		Hub:    ws.NewHub(logger),
	}
	a, err := app.New(c)
	require.NoError(t, err)
	return a.Fiber
}

func call(t *testing.T, fapp *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fapp.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func login(t *testing.T, fapp *fiber.App, email string) string {
	t.Helper()

	status, body := call(t, fapp, http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": testPassword})
	require.Equal(t, fiber.StatusOK, status, string(body))
	return decodeToken(t, body)
}

func decodeToken(t *testing.T, body []byte) string {
	t.Helper()

	var out authBody
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func createProposal(t *testing.T, fapp *fiber.App, token, title string, areas []string) uuid.UUID {
	t.Helper()

	status, body := call(t, fapp, http.MethodPost, "/propostas", token, map[string]any{
		"titulo": title, "descricao": "Estágio curricular", "tipo": "estagio",
		"departamento": "Informática", "localizacao": "Lisboa", "areas": areas,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var p proposalBody
	require.NoError(t, json.Unmarshal(body, &p))
	require.Equal(t, "pendente", p.Estado)
	return p.ID
}

func cleanupUsers(t *testing.T, db database.DB, emails []string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range emails {
		if _, err := db.Exec(ctx, `DELETE FROM users WHERE email = $1`, e); err != nil {
			t.Logf("cleanup %s: %v", e, err)
		}
	}
}
