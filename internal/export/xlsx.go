package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const planilha = "Relatorio"

func WriteXLSX(w io.Writer, t Tabela) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planilha); err != nil {
		return err
	}

	for c, col := range t.Colunas {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(planilha, cell, col); err != nil {
			return err
		}
	}
	if len(t.Colunas) > 0 {
		negrito, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		ultima, _ := excelize.CoordinatesToCellName(len(t.Colunas), 1)
		if err := f.SetCellStyle(planilha, "A1", ultima, negrito); err != nil {
			return err
		}
	}

	for r, linha := range t.Linhas {
		for c, valor := range linha {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(planilha, cell, valor); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
