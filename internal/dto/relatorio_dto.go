package dto

import "github.com/shopspring/decimal"

type ReceitaMensalItem struct {
	Mes   string          `json:"mes"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
}

type TopClienteItem struct {
	Titular       string          `json:"titular"`
	ValorSegurado decimal.Decimal `json:"valor_segurado"`
}

type SinistrosStatusItem struct {
	Status     string `json:"status"`
	Quantidade int64  `json:"quantidade"`
}

type SinistrosPeriodoItem struct {
	Mes        string `json:"mes"` // YYYY-MM
	Quantidade int64  `json:"quantidade"`
}

type PeriodoFilter struct {
	De  string `form:"de"  json:"de"  validate:"required,anomes"`
	Ate string `form:"ate" json:"ate" validate:"required,anomes"`
}

// ResumoRelatorios gathers every report for the dashboard endpoint.
type ResumoRelatorios struct {
	ReceitaMensal      []ReceitaMensalItem   `json:"receita_mensal"`
	TopClientes        []TopClienteItem      `json:"top_clientes"`
	SinistrosPorStatus []SinistrosStatusItem `json:"sinistros_por_status"`
}

type ExportResponse struct {
	Arquivo string `json:"arquivo"`
}
