package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
)

func TestGetPageInsight(t *testing.T) {
	since := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		body     string
		expected int64
	}{
		{
			name:     "Valor numérico simples",
			body:     `{"data":[{"name":"page_impressions_unique","period":"total_over_range","values":[{"value":12345}]}]}`,
			expected: 12345,
		},
		{
			name:     "Mapa de reações é somado",
			body:     `{"data":[{"name":"page_actions_post_reactions_total","period":"total_over_range","values":[{"value":{"like":10,"love":5,"wow":"3"}}]}]}`,
			expected: 18,
		},
		{
			name:     "Valor em string numérica",
			body:     `{"data":[{"name":"page_consumptions","period":"total_over_range","values":[{"value":"42"}]}]}`,
			expected: 42,
		},
		{
			name:     "Resposta sem dados vale zero",
			body:     `{"data":[]}`,
			expected: 0,
		},
		{
			name:     "Métrica sem valores vale zero",
			body:     `{"data":[{"name":"page_impressions_unique","period":"total_over_range","values":[]}]}`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "total_over_range", r.URL.Query().Get("period"))
				assert.Equal(t, "2025-05-01", r.URL.Query().Get("since"))
				assert.Equal(t, "2025-05-31", r.URL.Query().Get("until"))
				assert.Equal(t, "token-da-pagina", r.URL.Query().Get("access_token"))
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(testConfig(server.URL, 3))

			value, err := client.GetPageInsight(
				context.Background(), "111", "token-da-pagina",
				metadomain.MetricImpressionsUnique, since, until,
			)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestCountPublishedPosts(t *testing.T) {
	since := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "total_count", r.URL.Query().Get("summary"))

		// O fim do período precisa cobrir o dia inteiro
		assert.Equal(t, "1746057600", r.URL.Query().Get("since"))
		assert.Equal(t, "1748735999", r.URL.Query().Get("until"))

		fmt.Fprint(w, `{"data":[],"summary":{"total_count":27}}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 3))

	count, err := client.CountPublishedPosts(context.Background(), "111", "token-da-pagina", since, until)

	assert.NoError(t, err)
	assert.Equal(t, int64(27), count)
}
