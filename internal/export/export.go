// Package export writes report tables to files for download.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	FormatoCSV  = "csv"
	FormatoJSON = "json"
	FormatoXLSX = "xlsx"
	FormatoPDF  = "pdf"
)

// Tabela is a rendered report: a title, column headers and string cells.
type Tabela struct {
	Titulo  string
	Colunas []string
	Linhas  [][]string
}

var escritores = map[string]func(io.Writer, Tabela) error{
	FormatoCSV:  WriteCSV,
	FormatoJSON: WriteJSON,
	FormatoXLSX: WriteXLSX,
	FormatoPDF:  WritePDF,
}

func FormatoValido(formato string) bool {
	_, ok := escritores[strings.ToLower(formato)]
	return ok
}

// Salvar writes t to dir/<nome>_<timestamp>.<formato> and returns the path.
// The directory is created if needed.
func Salvar(dir, nome, formato string, t Tabela) (string, error) {
	formato = strings.ToLower(formato)
	escrever, ok := escritores[formato]
	if !ok {
		return "", fmt.Errorf("export: formato %q não suportado", formato)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}

	arquivo := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", nome, time.Now().Format("20060102_150405"), formato))
	f, err := os.Create(arquivo)
	if err != nil {
		return "", fmt.Errorf("export: create file: %w", err)
	}
	if err := escrever(f, t); err != nil {
		f.Close()
		os.Remove(arquivo)
		return "", fmt.Errorf("export: write %s: %w", formato, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close file: %w", err)
	}
	return arquivo, nil
}
