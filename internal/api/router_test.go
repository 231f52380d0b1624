package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/herculesvale/vale-service/internal/auth"
	"github.com/herculesvale/vale-service/internal/directory"
	"github.com/herculesvale/vale-service/internal/folio"
	"github.com/herculesvale/vale-service/internal/repository"
	"github.com/herculesvale/vale-service/internal/service"
)

const testSecret = "123456"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir, err := directory.New(directory.Seed(), testSecret)
	require.NoError(t, err)

	log := zap.NewNop()
	handler := NewRouter(Deps{
		Logger:     log,
		Tokens:     auth.NewTokenManager("test-jwt-secret", time.Hour, "vale-service"),
		Directory:  dir,
		Vouchers:   service.NewVoucherService(repository.NewMemoryVoucherRepository(), folio.NewGenerator(), log),
		SubClients: service.NewSubClientService(repository.NewMemorySubClientRepository(), log),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"username": "distribuidor001",
		"password": testSecret,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid credentials return token and distributor", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
			"username": "distribuidor001",
			"password": testSecret,
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		dist, _ := body["distributor"].(map[string]any)
		require.NotNil(t, dist)
		assert.Equal(t, "Juan Pérez", dist["name"])
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
			"username": "distribuidor001",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestVoucherRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/vouchers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/vouchers", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVoucherLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// create
	resp, created := doJSON(t, http.MethodPost, srv.URL+"/vouchers", token, map[string]string{
		"sub_client_name": "Pedro Ramírez",
		"amount":          "3500",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Regexp(t, `^HV\d{7}$`, created["folio"])
	assert.Equal(t, "promotion", created["payment_type"])
	assert.Equal(t, float64(12), created["installments"])
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, false, created["is_expired"])

	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	// detail
	resp, got := doJSON(t, http.MethodGet, srv.URL+"/vouchers/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created["folio"], got["folio"])

	// mark used
	resp, used := doJSON(t, http.MethodPost, srv.URL+"/vouchers/"+id+"/use", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, used["is_used"])
	assert.Equal(t, "used", used["status"])
	assert.NotEmpty(t, used["used_at"])

	// second use is a conflict
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/vouchers/"+id+"/use", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// unknown id is 404
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/vouchers/unknown/use", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoucherValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	tests := []struct {
		name   string
		amount string
	}{
		{"over limit", "5001"},
		{"zero", "0"},
		{"negative", "-5"},
		{"not a number", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/vouchers", token, map[string]string{
				"sub_client_name": "Pedro Ramírez",
				"amount":          tt.amount,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "amount", body["field"])
		})
	}

	// nothing was stored
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/vouchers", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVoucherStatusFilterOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	_, _ = doJSON(t, http.MethodPost, srv.URL+"/vouchers", token, map[string]string{
		"sub_client_name": "Cliente Uno", "amount": "1000",
	})
	resp, created := doJSON(t, http.MethodPost, srv.URL+"/vouchers", token, map[string]string{
		"sub_client_name": "Cliente Dos", "amount": "1000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/vouchers/"+id+"/use", token, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/vouchers?status=used", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Cliente Dos", list[0]["sub_client_name"])

	// invalid filter is rejected
	resp3, _ := doJSON(t, http.MethodGet, srv.URL+"/vouchers?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestShareOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/vouchers", token, map[string]string{
		"sub_client_name": "Pedro Ramírez",
		"amount":          "2500",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/vouchers/"+id+"/share?phone=5551234567", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg, _ := body["message"].(string)
	assert.Contains(t, msg, created["folio"])
	assert.Contains(t, msg, "Pedro Ramírez")
	assert.Contains(t, body["link"], "whatsapp://send?")
	assert.Contains(t, body["web_link"], "https://wa.me/525551234567")
}

func TestSubClientsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/subclients", token, map[string]string{
		"name":          "Laura Méndez",
		"address":       "Av. Juárez 123",
		"phone":         "555-123-4567",
		"date_of_birth": "14/02/1990",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "5551234567", created["phone"])
	assert.Equal(t, "14/02/1990", created["date_of_birth"])

	// short phone rejected with the offending field named
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/subclients", token, map[string]string{
		"name":          "Laura Méndez",
		"address":       "Av. Juárez 123",
		"phone":         "12345",
		"date_of_birth": "14/02/1990",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "phone", body["field"])

	listReq, err := http.NewRequest(http.MethodGet, srv.URL+"/subclients", nil)
	require.NoError(t, err)
	listReq.Header.Set("Authorization", "Bearer "+token)
	listResp, err := http.DefaultClient.Do(listReq)
	require.NoError(t, err)
	defer listResp.Body.Close()

	var list []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Len(t, list, 1)
}
