// Package report composes evaluation records into renderer-independent documents.
package report

import (
	"github.com/noah-isme/teacher-evaluation-api/pkg/config"
	"github.com/noah-isme/teacher-evaluation-api/pkg/export"
)

// Palette used across generated documents.
const (
	ColorPrimary   = "1565C0"
	ColorSummary   = "0D47A1"
	ColorLabelFill = "E3F2FD"
	ColorMuted     = "666666"
	ColorError     = "FF0000"
	ColorOnDark    = "FFFFFF"
)

// Page margins in inches.
var (
	SingleMargins = export.Margins{Top: 1, Bottom: 1, Left: 1, Right: 1}
	BatchMargins  = export.Margins{Top: 1.5, Bottom: 1.2, Left: 1, Right: 1}
)

// Branding holds the institution strings printed on every document.
type Branding struct {
	ProductLabel     string
	ProductSubtitle  string
	OrganizationName string
	InstitutionTitle string
	UniversityTitle  string
	DocumentTitle    string
}

// BrandingFromConfig reads branding from the documents configuration.
func BrandingFromConfig(cfg config.DocumentsConfig) Branding {
	return Branding{
		ProductLabel:     cfg.ProductLabel,
		ProductSubtitle:  cfg.ProductSubtitle,
		OrganizationName: cfg.OrganizationName,
		InstitutionTitle: cfg.InstitutionTitle,
		UniversityTitle:  cfg.UniversityTitle,
		DocumentTitle:    cfg.DocumentTitle,
	}
}

// DefaultBranding returns the CEPRUNSA branding.
func DefaultBranding() Branding {
	return Branding{
		ProductLabel:     "CEPRUNSA - UNSA",
		ProductSubtitle:  "Sistema de Evaluación Docente",
		OrganizationName: "Centro de Estudios Preuniversitarios - Universidad Nacional de San Agustín",
		InstitutionTitle: "CEPRUNSA - CENTRO DE ESTUDIOS PREUNIVERSITARIOS",
		UniversityTitle:  "UNIVERSIDAD NACIONAL DE SAN AGUSTÍN DE AREQUIPA",
		DocumentTitle:    "FICHA DE EVALUACIÓN DOCENTE",
	}
}

func (b Branding) header() []export.Paragraph {
	return []export.Paragraph{{
		Runs: []export.Run{
			{Text: b.ProductLabel, Bold: true, Size: 20, Color: ColorPrimary},
			{Text: " | ", Size: 20, Color: ColorMuted},
			{Text: b.ProductSubtitle, Size: 18, Color: ColorMuted},
		},
		Align:      export.AlignCenter,
		SpaceAfter: 100,
		RuleBelow:  ColorPrimary,
	}}
}

func (b Branding) footer() []export.Paragraph {
	muted := func(text string) export.Run {
		return export.Run{Text: text, Size: 16, Color: ColorMuted}
	}
	page := muted("")
	page.Field = export.FieldPage
	total := muted("")
	total.Field = export.FieldPageCount
	return []export.Paragraph{{
		Runs:        []export.Run{muted(b.OrganizationName), muted(" | Página "), page, muted(" de "), total},
		Align:       export.AlignCenter,
		SpaceBefore: 100,
		SpaceAfter:  100,
		RuleAbove:   ColorPrimary,
	}}
}
