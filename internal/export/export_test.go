package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func tabela() Tabela {
	return Tabela{
		Titulo:  "Receita mensal prevista",
		Colunas: []string{"mes", "total"},
		Linhas: [][]string{
			{"2024-05", "1500.00"},
			{"2024-04", "320.50"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tabela()))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"mes", "total"}, {"2024-05", "1500.00"}, {"2024-04", "320.50"}}, recs)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tabela()))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "1500.00", rows[0]["total"])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tabela()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(planilha, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1500.00", v)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, tabela()))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestSalvar(t *testing.T) {
	dir := t.TempDir()

	path, err := Salvar(dir, "receita-mensal", "CSV", tabela())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = Salvar(dir, "receita-mensal", "docx", tabela())
	assert.Error(t, err)
	assert.False(t, FormatoValido("docx"))
}
