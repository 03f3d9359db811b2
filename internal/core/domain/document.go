package domain

import (
	"strings"
	"time"
)

// Jurisdiction identifies the Australian jurisdiction a document belongs to
type Jurisdiction string

const (
	JurisdictionFederal Jurisdiction = "federal"
	JurisdictionNSW     Jurisdiction = "nsw"
	JurisdictionVIC     Jurisdiction = "vic"
	JurisdictionQLD     Jurisdiction = "qld"
	JurisdictionSA      Jurisdiction = "sa"
	JurisdictionWA      Jurisdiction = "wa"
	JurisdictionTAS     Jurisdiction = "tas"
	JurisdictionNT      Jurisdiction = "nt"
	JurisdictionACT     Jurisdiction = "act"
	JurisdictionUnknown Jurisdiction = "unknown"
)

// jurisdictionAliases maps the names corpus sources use to canonical values
var jurisdictionAliases = map[string]Jurisdiction{
	"commonwealth":                 JurisdictionFederal,
	"cth":                          JurisdictionFederal,
	"federal":                      JurisdictionFederal,
	"australia":                    JurisdictionFederal,
	"new south wales":              JurisdictionNSW,
	"nsw":                          JurisdictionNSW,
	"victoria":                     JurisdictionVIC,
	"vic":                          JurisdictionVIC,
	"queensland":                   JurisdictionQLD,
	"qld":                          JurisdictionQLD,
	"south australia":              JurisdictionSA,
	"sa":                           JurisdictionSA,
	"western australia":            JurisdictionWA,
	"wa":                           JurisdictionWA,
	"tasmania":                     JurisdictionTAS,
	"tas":                          JurisdictionTAS,
	"northern territory":           JurisdictionNT,
	"nt":                           JurisdictionNT,
	"australian capital territory": JurisdictionACT,
	"act":                          JurisdictionACT,
}

// ParseJurisdiction normalises a raw corpus jurisdiction string.
// Unknown values map to JurisdictionUnknown rather than erroring.
func ParseJurisdiction(s string) Jurisdiction {
	if j, ok := jurisdictionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return j
	}
	return JurisdictionUnknown
}

// DocumentType classifies the kind of legal document
type DocumentType string

const (
	TypeLegislation DocumentType = "legislation"
	TypeCaseLaw     DocumentType = "case_law"
	TypeRegulation  DocumentType = "regulation"
	TypeCommentary  DocumentType = "commentary"
	TypeUnknown     DocumentType = "unknown"
)

var documentTypeAliases = map[string]DocumentType{
	"legislation":           TypeLegislation,
	"primary_legislation":   TypeLegislation,
	"secondary_legislation": TypeRegulation,
	"act":                   TypeLegislation,
	"case_law":              TypeCaseLaw,
	"decision":              TypeCaseLaw,
	"judgment":              TypeCaseLaw,
	"regulation":            TypeRegulation,
	"commentary":            TypeCommentary,
}

// ParseDocumentType normalises a raw corpus document type string
func ParseDocumentType(s string) DocumentType {
	if t, ok := documentTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return TypeUnknown
}

// Document is an ingested legal passage with its citation metadata.
// Documents are immutable once ingested; re-ingestion replaces the corpus
// rather than mutating individual records.
type Document struct {
	ID           string       `json:"id"`
	Text         string       `json:"text"`
	Citation     string       `json:"citation"`
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Type         DocumentType `json:"type"`
	Date         *time.Time   `json:"date,omitempty"`
	URL          string       `json:"url"`
	Source       string       `json:"source"`
}

// SearchText combines citation and body text. Both the embedding input and
// the lexical index are built over this combined form so that act names in
// citations are searchable alongside provision text.
func (d *Document) SearchText() string {
	return d.Citation + " " + d.Text
}

// Metadata returns the filterable metadata projection stored alongside the
// document's vector in the vector index.
func (d *Document) Metadata() map[string]string {
	m := map[string]string{
		"citation":     d.Citation,
		"jurisdiction": string(d.Jurisdiction),
		"type":         string(d.Type),
		"url":          d.URL,
		"source":       d.Source,
	}
	if d.Date != nil {
		m["date"] = d.Date.Format("2006-01-02")
	}
	return m
}
