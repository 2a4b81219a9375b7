package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EsmalteStudio/nail-scheduler/internal/config"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
	"github.com/EsmalteStudio/nail-scheduler/internal/notify"
	"github.com/EsmalteStudio/nail-scheduler/internal/routes"
)

// ------------------------------------------------------
// setup
// ------------------------------------------------------

type testAPI struct {
	router *gin.Engine
	cfg    *config.Config
	subs   *notify.SubscriptionStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	gin.SetMode(gin.TestMode)
	tmp := t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(tmp, "test.db")), &gorm.Config{})
	require.NoError(t, err)

	db.Exec("PRAGMA foreign_keys = ON")

	require.NoError(t, db.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Servico{},
		&models.Produto{},
		&models.Agendamento{},
	))

	cfg := &config.Config{
		AppEnv:       "test",
		JWTSecret:    "test-secret",
		VAPIDSubject: "mailto:teste@example.com",
		VAPIDFile:    filepath.Join(tmp, "vapid.json"),
		SubsFile:     filepath.Join(tmp, "subs.json"),
	}

	vapid, err := notify.EnsureVAPID(cfg)
	require.NoError(t, err)

	subs := notify.NewSubscriptionStore(cfg.SubsFile)
	sender := notify.NewSender(vapid, subs, slog.Default())
	onesignal := notify.NewOneSignalClient("", "", slog.Default())
	dispatcher := notify.NewDispatcher(sender, onesignal, slog.Default())

	router := gin.New()
	routes.RegisterRoutes(router, db, cfg, vapid, subs, dispatcher)

	return &testAPI{router: router, cfg: cfg, subs: subs}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func (a *testAPI) register(t *testing.T, email string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	return decode(t, w)["token"].(string)
}

func (a *testAPI) criaCliente(t *testing.T, token, nome string) uint {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/clientes", token, gin.H{
		"nome":     nome,
		"telefone": "11999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func (a *testAPI) criaServico(t *testing.T, token, nome string, preco float64, duracao int) uint {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/servicos", token, gin.H{
		"nome":    nome,
		"preco":   preco,
		"duracao": duracao,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func (a *testAPI) criaAgendamento(t *testing.T, token string, clienteID, servicoID uint, dataHora time.Time, status string) uint {
	t.Helper()

	body := gin.H{
		"cliente_id": clienteID,
		"servico_id": servicoID,
		"data_hora":  dataHora.Format(time.RFC3339),
	}
	if status != "" {
		body["status"] = status
	}

	w := a.do(t, http.MethodPost, "/api/agendamentos", token, body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func (a *testAPI) pontosDoCliente(t *testing.T, token string, clienteID uint) int {
	t.Helper()

	w := a.do(t, http.MethodGet, fmt.Sprintf("/api/clientes/%d", clienteID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return int(decode(t, w)["pontos"].(float64))
}

// ------------------------------------------------------
// auth
// ------------------------------------------------------

func TestRegisterELogin(t *testing.T) {
	api := newTestAPI(t)

	token := api.register(t, "ana@studio.com")
	assert.NotEmpty(t, token)

	// email duplicado
	w := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "ana@studio.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email_already_in_use", decode(t, w)["error"])

	// senha curta
	w = api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "outra@studio.com",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// login ok
	w = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@studio.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	// senha errada
	w = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@studio.com",
		"password": "errada1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error"])

	// /auth/me
	w = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "ana@studio.com", user["email"])
}

func TestAuthMiddlewareCausas(t *testing.T) {
	api := newTestAPI(t)

	// sem header
	w := api.do(t, http.MethodGet, "/api/clientes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", decode(t, w)["error"])

	// header sem Bearer
	req := httptest.NewRequest(http.MethodGet, "/api/clientes", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_authorization_header", decode(t, rec)["error"])

	// token lixo
	w = api.do(t, http.MethodGet, "/api/clientes", "nao-e-um-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", decode(t, w)["error"])

	// token expirado
	claims := jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(api.cfg.JWTSecret))
	require.NoError(t, err)

	w = api.do(t, http.MethodGet, "/api/clientes", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_expired", decode(t, w)["error"])
}

// ------------------------------------------------------
// fidelidade: cenário completo
// ------------------------------------------------------

func TestCenarioFidelidade(t *testing.T) {
	api := newTestAPI(t)

	token := api.register(t, "a@x.com")

	clienteID := api.criaCliente(t, token, "Maria")
	servicoID := api.criaServico(t, token, "Manicure", 35.00, 45)

	dataHora := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	agID := api.criaAgendamento(t, token, clienteID, servicoID, dataHora, "pending")

	assert.Equal(t, 0, api.pontosDoCliente(t, token, clienteID))

	patch := gin.H{
		"cliente_id": clienteID,
		"servico_id": servicoID,
		"data_hora":  dataHora.Format(time.RFC3339),
		"status":     "done",
	}

	w := api.do(t, http.MethodPatch, fmt.Sprintf("/api/agendamentos/%d", agID), token, patch)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Equal(t, "done", decode(t, w)["status"])

	assert.Equal(t, 10, api.pontosDoCliente(t, token, clienteID))

	// PATCH repetido não credita de novo
	w = api.do(t, http.MethodPatch, fmt.Sprintf("/api/agendamentos/%d", agID), token, patch)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, api.pontosDoCliente(t, token, clienteID))
}

// ------------------------------------------------------
// round-trip e histórico
// ------------------------------------------------------

func TestAgendamentoRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	token := api.register(t, "ana@studio.com")
	clienteID := api.criaCliente(t, token, "Maria")
	servicoID := api.criaServico(t, token, "Pedicure", 40.00, 50)

	dataHora := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	api.criaAgendamento(t, token, clienteID, servicoID, dataHora, "")

	w := api.do(t, http.MethodGet, "/api/agendamentos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeList(t, w)
	require.Len(t, list, 1)

	ag := list[0]
	assert.Equal(t, float64(clienteID), ag["cliente_id"])
	assert.Equal(t, float64(servicoID), ag["servico_id"])
	assert.Equal(t, "pending", ag["status"])

	gravado, err := time.Parse(time.RFC3339, ag["data_hora"].(string))
	require.NoError(t, err)
	assert.True(t, gravado.Equal(dataHora), "data_hora %s != %s", gravado, dataHora)

	// listagem embute cliente e serviço
	cliente := ag["cliente"].(map[string]any)
	servico := ag["servico"].(map[string]any)
	assert.Equal(t, "Maria", cliente["nome"])
	assert.Equal(t, "Pedicure", servico["nome"])

	// histórico por cliente
	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/clientes/%d/agendamentos", clienteID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestClientePatchSubstituicaoTotal(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana@studio.com")

	w := api.do(t, http.MethodPost, "/api/clientes", token, gin.H{
		"nome":      "Maria",
		"telefone":  "11999999999",
		"instagram": "@maria.nails",
		"alergias":  "acetona",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["id"].(float64))

	// payload sem instagram/alergias: campos omitidos voltam a vazio
	w = api.do(t, http.MethodPatch, fmt.Sprintf("/api/clientes/%d", id), token, gin.H{
		"nome":     "Maria Silva",
		"telefone": "11988888888",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Maria Silva", body["nome"])
	assert.Equal(t, "", body["instagram"])
	assert.Equal(t, "", body["alergias"])
}

// ------------------------------------------------------
// isolamento entre usuários
// ------------------------------------------------------

func TestIsolamentoEntreUsuarios(t *testing.T) {
	api := newTestAPI(t)

	tokenA := api.register(t, "a@studio.com")
	tokenB := api.register(t, "b@studio.com")

	clienteID := api.criaCliente(t, tokenA, "Maria")
	servicoID := api.criaServico(t, tokenA, "Manicure", 35.00, 45)
	agID := api.criaAgendamento(t, tokenA, clienteID, servicoID, time.Now().Add(24*time.Hour), "")

	casos := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, fmt.Sprintf("/api/clientes/%d", clienteID), nil},
		{http.MethodPatch, fmt.Sprintf("/api/clientes/%d", clienteID), gin.H{"nome": "X", "telefone": "1"}},
		{http.MethodDelete, fmt.Sprintf("/api/clientes/%d", clienteID), nil},
		{http.MethodGet, fmt.Sprintf("/api/clientes/%d/agendamentos", clienteID), nil},
		{http.MethodPatch, fmt.Sprintf("/api/servicos/%d", servicoID), gin.H{}},
		{http.MethodDelete, fmt.Sprintf("/api/servicos/%d", servicoID), nil},
		{http.MethodPatch, fmt.Sprintf("/api/agendamentos/%d", agID), gin.H{
			"cliente_id": clienteID,
			"servico_id": servicoID,
			"data_hora":  time.Now().Format(time.RFC3339),
			"status":     "done",
		}},
		{http.MethodDelete, fmt.Sprintf("/api/agendamentos/%d", agID), nil},
	}

	for _, caso := range casos {
		w := api.do(t, caso.method, caso.path, tokenB, caso.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s: %s", caso.method, caso.path, w.Body.String())
	}

	// listagens do B continuam vazias
	w := api.do(t, http.MethodGet, "/api/clientes", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	// e nada do A foi alterado pelo B
	assert.Equal(t, 0, api.pontosDoCliente(t, tokenA, clienteID))
}

// ------------------------------------------------------
// exclusão em cascata
// ------------------------------------------------------

func TestDeleteClienteCascataAgendamentos(t *testing.T) {
	api := newTestAPI(t)

	token := api.register(t, "ana@studio.com")
	clienteID := api.criaCliente(t, token, "Maria")
	servicoID := api.criaServico(t, token, "Manicure", 35.00, 45)
	api.criaAgendamento(t, token, clienteID, servicoID, time.Now().Add(24*time.Hour), "")

	w := api.do(t, http.MethodDelete, fmt.Sprintf("/api/clientes/%d", clienteID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/api/agendamentos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

// ------------------------------------------------------
// produtos
// ------------------------------------------------------

func TestProdutoCRUD(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana@studio.com")

	w := api.do(t, http.MethodPost, "/api/produtos", token, gin.H{
		"nome":      "Esmalte Vermelho",
		"marca":     "Risque",
		"categoria": "esmalte",
		"colorHex":  "#CC0000",
		"qty":       1,
		"minQty":    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	id := uint(decode(t, w)["id"].(float64))

	// atualização parcial: só qty
	w = api.do(t, http.MethodPatch, fmt.Sprintf("/api/produtos/%d", id), token, gin.H{"qty": 5})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(5), body["qty"])
	assert.Equal(t, "Esmalte Vermelho", body["nome"])
	assert.Equal(t, "#CC0000", body["colorHex"])

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/produtos/%d", id), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// ------------------------------------------------------
// push
// ------------------------------------------------------

func TestPushEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/vapid-public-key", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["publicKey"])

	sub := gin.H{
		"endpoint": "https://push.example.com/abc",
		"keys":     gin.H{"p256dh": "p", "auth": "a"},
	}

	w = api.do(t, http.MethodPost, "/api/subscribe", "", sub)
	assert.Equal(t, http.StatusCreated, w.Code)

	// repetir a mesma inscrição não duplica
	w = api.do(t, http.MethodPost, "/api/subscribe", "", sub)
	assert.Equal(t, http.StatusCreated, w.Code)

	subs, err := api.subs.All()
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	// sem endpoint
	w = api.do(t, http.MethodPost, "/api/subscribe", "", gin.H{
		"keys": gin.H{"p256dh": "p", "auth": "a"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ------------------------------------------------------
// relatório
// ------------------------------------------------------

func TestRelatorioResumo(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana@studio.com")

	clienteID := api.criaCliente(t, token, "Maria")
	servicoID := api.criaServico(t, token, "Manicure", 35.00, 45)

	// meio do mês corrente, para não depender do dia em que o teste roda
	now := time.Now()
	agora := time.Date(now.Year(), now.Month(), 15, 10, 0, 0, 0, time.Local)

	doneID := api.criaAgendamento(t, token, clienteID, servicoID, agora, "confirmed")
	api.criaAgendamento(t, token, clienteID, servicoID, agora.Add(time.Hour), "pending")

	w := api.do(t, http.MethodPatch, fmt.Sprintf("/api/agendamentos/%d", doneID), token, gin.H{
		"cliente_id": clienteID,
		"servico_id": servicoID,
		"data_hora":  agora.Format(time.RFC3339),
		"status":     "done",
	})
	require.Equal(t, http.StatusOK, w.Code)

	api.do(t, http.MethodPost, "/api/produtos", token, gin.H{
		"nome":      "Acetona",
		"categoria": "removedor",
		"qty":       0,
		"minQty":    1,
	})

	w = api.do(t, http.MethodGet, "/api/relatorios/resumo", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	body := decode(t, w)
	porStatus := body["agendamentos"].(map[string]any)

	assert.Equal(t, float64(1), porStatus["done"])
	assert.Equal(t, float64(1), porStatus["pending"])
	assert.Equal(t, float64(0), porStatus["cancelled"])
	assert.Equal(t, 35.00, body["receita"])
	assert.Equal(t, float64(1), body["total_clientes"])
	assert.Equal(t, float64(1), body["produtos_para_repor"])
}
