package export

// Report rendering using go-pdf/fpdf.
// A4 portrait page with:
//   - Title header and generation timestamp
//   - Column header row
//   - One row per table line, equal-width columns

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

func WritePDF(w io.Writer, t Tabela) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	// core fonts are cp1252; accented Portuguese text must be translated
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(t.Titulo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Gerado em "+time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(t.Colunas) == 0 {
		return pdf.Output(w)
	}
	colW := contentW / float64(len(t.Colunas))

	// ── Column header ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	for i, col := range t.Colunas {
		ln := 0
		if i == len(t.Colunas)-1 {
			ln = 1
		}
		pdf.CellFormat(colW, 6, tr(col), "B", ln, "L", false, 0, "")
	}

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, linha := range t.Linhas {
		for i := range t.Colunas {
			valor := ""
			if i < len(linha) {
				valor = linha[i]
			}
			ln := 0
			if i == len(t.Colunas)-1 {
				ln = 1
			}
			pdf.CellFormat(colW, 5, tr(valor), "", ln, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}
