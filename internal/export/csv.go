package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
)

func WriteCSV(w io.Writer, t Tabela) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Colunas); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Linhas); err != nil {
		return err
	}
	return cw.Error()
}

// WriteJSON writes one object per row keyed by column name.
func WriteJSON(w io.Writer, t Tabela) error {
	rows := make([]map[string]string, 0, len(t.Linhas))
	for _, linha := range t.Linhas {
		obj := make(map[string]string, len(t.Colunas))
		for i, col := range t.Colunas {
			if i < len(linha) {
				obj[col] = linha[i]
			}
		}
		rows = append(rows, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
