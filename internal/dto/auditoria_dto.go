package dto

import "time"

// EntradaAuditoria is what callers hand to the audit trail; the id and
// timestamp are assigned on append.
type EntradaAuditoria struct {
	Usuario    string
	Operacao   string
	Entidade   string
	EntidadeID string
	Sucesso    bool
	Detalhe    string
}

type FiltroAuditoria struct {
	Usuario  string `form:"usuario"`
	Entidade string `form:"entidade"`
	Limit    int    `form:"limit"`
}

type AuditoriaResponse struct {
	ID         string    `json:"id"`
	Momento    time.Time `json:"momento"`
	Usuario    string    `json:"usuario"`
	Operacao   string    `json:"operacao"`
	Entidade   string    `json:"entidade"`
	EntidadeID *string   `json:"entidade_id"`
	Sucesso    bool      `json:"sucesso"`
	Detalhe    *string   `json:"detalhe"`
}
