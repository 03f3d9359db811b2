package domain

// RiskLevel is the ordered compliance risk classification of a generated
// answer: low < medium < high < professional_advice_required
type RiskLevel string

const (
	RiskLow                RiskLevel = "low_risk"
	RiskMedium             RiskLevel = "medium_risk"
	RiskHigh               RiskLevel = "high_risk"
	RiskProfessionalAdvice RiskLevel = "professional_advice_required"
)

var riskRank = map[RiskLevel]int{
	RiskLow:                0,
	RiskMedium:             1,
	RiskHigh:               2,
	RiskProfessionalAdvice: 3,
}

// Rank returns the position of the level in the risk ordering
func (r RiskLevel) Rank() int {
	return riskRank[r]
}

// MaxRisk returns the higher of two risk levels
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// LegalDomain classifies a query/response into a practice area for
// disclaimer selection
type LegalDomain string

const (
	DomainGeneral        LegalDomain = "general_legal"
	DomainCriminal       LegalDomain = "criminal_law"
	DomainFamily         LegalDomain = "family_law"
	DomainMigration      LegalDomain = "migration"
	DomainEmployment     LegalDomain = "employment"
	DomainProperty       LegalDomain = "property"
	DomainCorporate      LegalDomain = "corporate_law"
	DomainTax            LegalDomain = "tax_law"
	DomainConstitutional LegalDomain = "constitutional"
)

// Placement says where a disclaimer must appear relative to the answer text
type Placement string

const (
	PlacementHeader Placement = "header"
	PlacementInline Placement = "inline"
	PlacementFooter Placement = "footer"
)

// Disclaimer is a mandated warning attached to answers in particular domains
// at or below a given risk severity. Disclaimers are static configuration,
// loaded once and never mutated at runtime.
type Disclaimer struct {
	Content          string        `json:"content"`
	Placement        Placement     `json:"placement"`
	Severity         RiskLevel     `json:"severity"`
	AppliesToDomains []LegalDomain `json:"applies_to_domains"`
}

// AppliesTo reports whether the disclaimer covers the given domain, either
// directly or via the general_legal catch-all
func (d Disclaimer) AppliesTo(domain LegalDomain) bool {
	for _, dd := range d.AppliesToDomains {
		if dd == domain || dd == DomainGeneral {
			return true
		}
	}
	return false
}

// ComplianceCheck is the outcome of one validation check. Constructed fresh
// per validation call.
type ComplianceCheck struct {
	CheckID         string    `json:"check_id"`
	Description     string    `json:"description"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Passed          bool      `json:"passed"`
	Details         string    `json:"details"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

// ComplianceWarning summarises a failed check for API consumers
type ComplianceWarning struct {
	CheckID     string    `json:"check"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	RiskLevel   RiskLevel `json:"risk_level"`
}

// ValidationResult aggregates all compliance checks for one answer.
// OverallCompliance always equals the maximum risk level among
// ChecksPerformed.
type ValidationResult struct {
	OverallCompliance   RiskLevel           `json:"overall_compliance"`
	Domain              LegalDomain         `json:"domain"`
	ChecksPerformed     []ComplianceCheck   `json:"checks_performed"`
	Warnings            []ComplianceWarning `json:"warnings"`
	RequiredDisclaimers []Disclaimer        `json:"required_disclaimers"`
	ConfidenceScore     float64             `json:"confidence_score"`
}

// DisclaimersByPlacement groups the required disclaimers for the enhancer,
// preserving configured order within each placement
func (v *ValidationResult) DisclaimersByPlacement(p Placement) []Disclaimer {
	var out []Disclaimer
	for _, d := range v.RequiredDisclaimers {
		if d.Placement == p {
			out = append(out, d)
		}
	}
	return out
}
