package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/chatscribe/chatscribe/internal/article"
)

// writeArticlePDF renders the article as a minimal PDF, preserving paragraphs
// and heading sizes. Content is narrowed to latin-1 first because the core
// fonts cover only cp1252.
func writeArticlePDF(a article.Article, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	if a.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, article.SanitizeLatin1(a.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.Ln(2)
	}

	scanner := bufio.NewScanner(strings.NewReader(a.Body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(article.SanitizeLatin1(scanner.Text()))
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if strings.HasPrefix(s, "#") {
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.TrimSpace(s[i:])
			if text == "" {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, s, "", "L", false)
	}

	return pdf.OutputFileAndClose(outPath)
}
