package metadomain

// Métricas da Graph API rastreadas por página e período
const (
	MetricImpressionsUnique = "page_impressions_unique"
	MetricEngagedUsers      = "page_engaged_users"
	MetricPostEngagements   = "page_post_engagements"
	MetricReactionsTotal    = "page_actions_post_reactions_total"
	MetricConsumptions      = "page_consumptions"
)

// InsightEntry é uma métrica com seus valores no período
type InsightEntry struct {
	Name   string         `json:"name"`
	Period string         `json:"period"`
	Values []InsightValue `json:"values"`
}

// InsightValue é um ponto de dado da métrica. O valor pode vir como
// número, string numérica ou mapa (reações por tipo).
type InsightValue struct {
	Value   interface{} `json:"value"`
	EndTime string      `json:"end_time,omitempty"`
}

// PublishedPostsSummary carrega o total de publicações do período
type PublishedPostsSummary struct {
	TotalCount int64 `json:"total_count"`
}

// TokenDebugIssue é o detalhe de erro dentro de /debug_token
type TokenDebugIssue struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TokenDebugData é o conteúdo de /debug_token
type TokenDebugData struct {
	AppID     string           `json:"app_id"`
	IsValid   bool             `json:"is_valid"`
	ExpiresAt int64            `json:"expires_at"`
	Scopes    []string         `json:"scopes"`
	Error     *TokenDebugIssue `json:"error,omitempty"`
}
