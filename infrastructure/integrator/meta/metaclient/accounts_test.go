package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListAccounts_SeguePaginacao(t *testing.T) {
	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-de-teste", r.URL.Query().Get("access_token"))

		if r.URL.Query().Get("after") == "" {
			next := server.URL + "/me/accounts?after=cursor2&access_token=token-de-teste"
			fmt.Fprintf(w, `{
				"data": [
					{"id": "111", "name": "Página A", "tasks": ["ANALYZE", "MODERATE"]},
					{"id": "222", "name": "Página B", "tasks": ["MODERATE"]}
				],
				"paging": {"next": %q}
			}`, next)
			return
		}

		fmt.Fprint(w, `{"data": [{"id": "333", "name": "Página C"}], "paging": {}}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 3))

	accounts, err := client.ListAccounts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, accounts, 3)
	assert.Equal(t, "111", accounts[0].ID)
	assert.Equal(t, "333", accounts[2].ID)

	// A tarefa ANALYZE define o acesso a insights; listagem sem tasks assume acesso
	assert.True(t, accounts[0].CanAnalyze())
	assert.False(t, accounts[1].CanAnalyze())
	assert.True(t, accounts[2].CanAnalyze())
}

func TestListAccounts_ListaVazia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [], "paging": {}}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 3))

	accounts, err := client.ListAccounts(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, accounts)
}
