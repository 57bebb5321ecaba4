package metadomain

// PageAccount é uma página retornada por /me/accounts
type PageAccount struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Tasks []string `json:"tasks,omitempty"`
}

// CanAnalyze indica se o token tem a tarefa ANALYZE na página, exigida
// para ler insights. Listagens antigas não trazem o campo, nesse caso
// assumimos acesso e deixamos a própria API recusar.
func (p PageAccount) CanAnalyze() bool {
	if len(p.Tasks) == 0 {
		return true
	}
	for _, task := range p.Tasks {
		if task == "ANALYZE" {
			return true
		}
	}
	return false
}

// Paging carrega o cursor de paginação da Graph API
type Paging struct {
	Next string `json:"next"`
}
