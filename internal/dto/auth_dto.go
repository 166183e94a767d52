package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username"`
	Senha    string `json:"senha"`
}

type CriarUsuarioRequest struct {
	Username   string  `json:"username"    validate:"required,min=3,max=150"`
	Senha      string  `json:"senha"       validate:"required,min=4"`
	Perfil     string  `json:"perfil"      validate:"required,oneof=admin comum cliente"`
	ClienteCPF *string `json:"cliente_cpf" validate:"omitempty,cpf"`
}

type EditarUsuarioRequest struct {
	Senha      *string `json:"senha"       validate:"omitempty,min=4"`
	Perfil     *string `json:"perfil"      validate:"omitempty,oneof=admin comum cliente"`
	Ativo      *bool   `json:"ativo"`
	ClienteCPF *string `json:"cliente_cpf" validate:"omitempty,cpf"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Sessao identifies who is acting. It is the result of a successful login and
// the actor passed to every back-office operation.
type Sessao struct {
	Username string `json:"username"`
	Perfil   string `json:"perfil"`
}

type UsuarioResponse struct {
	ID         uint    `json:"id"`
	Username   string  `json:"username"`
	Perfil     string  `json:"perfil"`
	ClienteCPF *string `json:"cliente_cpf"`
	Ativo      bool    `json:"ativo"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Sessao      Sessao `json:"sessao"`
}
