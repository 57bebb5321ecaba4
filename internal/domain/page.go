package domain

import "strings"

// Page representa uma página do Facebook acessível pela credencial
type Page struct {
	ID              string
	Name            string
	AccessToken     string // token de página obtido por troca, vazio quando indisponível
	CanReadInsights bool
}

// DisplayName devolve o nome da página com fallback para o ID
func (p Page) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// isPlaceholderName identifica páginas reservadas do tipo "Srholder<dígitos>"
func isPlaceholderName(name string) bool {
	if !strings.HasPrefix(name, "Srholder") {
		return false
	}
	suffix := name[len("Srholder"):]
	if suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FilterPlaceholderPages remove páginas reservadas antes de qualquer busca
func FilterPlaceholderPages(pages []Page) []Page {
	filtered := make([]Page, 0, len(pages))
	for _, page := range pages {
		if isPlaceholderName(page.Name) {
			continue
		}
		filtered = append(filtered, page)
	}
	return filtered
}
