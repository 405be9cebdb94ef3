package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sunbonsys/backend/internal/export"
	"github.com/sunbonsys/backend/internal/models"
)

func TestSubmitContact(t *testing.T) {
	api := newTestAPI(t, testConfig(t))
	server := httptest.NewServer(api.Router)
	defer server.Close()

	t.Run("Valid", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/submit", SubmitRequest{
			FirstName: "Arun",
			LastName:  "Menon",
			Email:     "arun@example.com",
			Company:   "Acme Infra",
			Product:   "FRA/FFC/SSS Proposal",
			Message:   "Need an assessment for two sites.",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sr SubmitResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
		assert.True(t, sr.Success)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/submit", "application/json", strings.NewReader(`{"firstName":`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NoAuthRequired", func(t *testing.T) {
		// The submission endpoint is public; no Authorization header was sent
		// above and both requests were answered, never gated.
		contacts, err := api.store.ListContacts()
		require.NoError(t, err)
		assert.Len(t, contacts, 1)
	})
}

// Full flow: submit → login → list → export.
func TestSubmitListExportFlow(t *testing.T) {
	api := newTestAPI(t, testConfig(t))
	server := httptest.NewServer(api.Router)
	defer server.Close()

	for _, c := range []SubmitRequest{
		{FirstName: "Arun", LastName: "Menon", Email: "arun@example.com"},
		{FirstName: "Priya", LastName: "Nair", Email: "priya@example.com", Company: "Acme Infra"},
	} {
		resp := postJSON(t, server.URL+"/submit", c)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	token := login(t, server.URL)

	resp := authedGet(t, server.URL+"/contacts", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var contacts []models.Contact
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&contacts))
	require.Len(t, contacts, 2)
	assert.Equal(t, "Priya", contacts[0].FirstName, "newest first")
	assert.Equal(t, "Arun", contacts[1].FirstName)

	resp = authedGet(t, server.URL+"/export", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=leads.xlsx", resp.Header.Get("Content-Disposition"))

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two leads")
	assert.Equal(t, "First Name", rows[0][1])
	assert.Equal(t, "Priya", rows[1][1])
	assert.Equal(t, "Arun", rows[2][1])
}

func TestExportRequiresAuth(t *testing.T) {
	api := newTestAPI(t, testConfig(t))
	server := httptest.NewServer(api.Router)
	defer server.Close()

	resp := authedGet(t, server.URL+"/export", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := authedGet(t, server.URL+"/export", "bogus")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}

func TestRequireAdminSetsClaims(t *testing.T) {
	api := newTestAPI(t, testConfig(t))

	acct, err := api.store.GetAdminByEmail(testAdminEmail)
	require.NoError(t, err)
	token, err := api.tokens.Issue(acct)
	require.NoError(t, err)

	var sawClaims bool
	handler := api.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		sawClaims = ok && claims.AccountID == acct.ID && claims.Email == acct.Email
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawClaims)
}
