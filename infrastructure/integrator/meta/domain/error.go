package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// Subcódigos de OAuthException que indicam token inutilizável:
// 460 senha alterada, 463 token expirado, 467 token invalidado
var oauthTokenSubcodes = map[int]bool{460: true, 463: true, 467: true}

// IsTokenExpired verifica se o erro é de token expirado ou invalidado.
// O código 190 é o erro clássico de validação de token.
func (e *ErrorResponse) IsTokenExpired() bool {
	if e.Error.Code == 190 {
		return true
	}
	return e.Error.Type == "OAuthException" && oauthTokenSubcodes[e.Error.ErrorSubcode]
}

// IsAppThrottled verifica se o erro é de limite de chamadas.
// Códigos 4, 17 e 32: limites de aplicativo, de usuário e de página.
func (e *ErrorResponse) IsAppThrottled() bool {
	switch e.Error.Code {
	case 4, 17, 32:
		return true
	}
	return false
}
