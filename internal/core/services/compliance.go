package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driving"
)

// Ensure complianceService implements ComplianceService
var _ driving.ComplianceService = (*complianceService)(nil)

// prohibitedPhrases never appear in a compliant answer. Any hit forces
// professional_advice_required.
var prohibitedPhrases = []string{
	"i guarantee",
	"you will definitely win",
	"this is legal advice",
	"you should sue",
	"you have no case",
	"ignore the law",
	"this will work in court",
	"100% certain",
	"you can't lose",
	"guaranteed outcome",
	"definite result",
	"sure thing",
	"without a doubt in court",
}

// citationPatterns recognise well-formed Australian legal citations
var citationPatterns = map[string]*regexp.Regexp{
	"case_citation":    regexp.MustCompile(`\b[A-Za-z\s&]+\sv\s[A-Za-z\s&]+\s\(\d{4}\)\s\d+\s[A-Z]+\s\d+\b`),
	"legislation":      regexp.MustCompile(`\b[A-Za-z\s]+Act\s\d{4}\s\([A-Za-z]+\)\s(s|section)\s\d+[A-Za-z]*\b`),
	"regulation":       regexp.MustCompile(`\b[A-Za-z\s]+Regulation\s\d{4}\s\([A-Za-z]+\)\sreg\s\d+\b`),
	"austlii_url":      regexp.MustCompile(`https?://www\.austlii\.edu\.au/[a-zA-Z0-9/._-]+`),
	"federal_register": regexp.MustCompile(`\bF\d{4}C\d{5}\b`),
	"nsw_citation":     regexp.MustCompile(`\b\d{4}\sNSWSC\s\d+\b`),
	"vic_citation":     regexp.MustCompile(`\b\d{4}\sVSC\s\d+\b`),
	"qld_citation":     regexp.MustCompile(`\b\d{4}\sQSC\s\d+\b`),
}

// citationTypes fixes iteration order over citationPatterns so check
// details are reproducible
var citationTypes = []string{
	"case_citation", "legislation", "regulation", "austlii_url",
	"federal_register", "nsw_citation", "vic_citation", "qld_citation",
}

var adviceIndicators = []string{
	"you should", "you must", "you need to", "i recommend", "i suggest",
	"the best approach", "you can rely on", "this means you", "in your case",
}

var informationIndicators = []string{
	"generally", "typically", "usually", "may", "might", "could",
	"for example", "in some cases", "this information", "educational purposes",
}

var specificQueryIndicators = []string{
	"what should i do", "my situation", "my case", "help me",
}

// jurisdictionKeywords maps jurisdiction labels to phrases that signal them
var jurisdictionKeywords = map[string][]string{
	"federal": {"commonwealth", "federal", "high court of australia", "federal court", "family court"},
	"nsw":     {"new south wales", "nsw", "supreme court of nsw", "nswsc", "sydney"},
	"vic":     {"victoria", "vic", "supreme court of victoria", "vsc", "melbourne"},
	"qld":     {"queensland", "qld", "supreme court of queensland", "qsc", "brisbane"},
	"sa":      {"south australia", "sa", "supreme court of south australia", "sasc", "adelaide"},
	"wa":      {"western australia", "wa", "supreme court of western australia", "wasc", "perth"},
	"tas":     {"tasmania", "tas", "supreme court of tasmania", "tassc", "hobart"},
	"nt":      {"northern territory", "nt", "supreme court of northern territory", "ntsc", "darwin"},
	"act":     {"australian capital territory", "act", "supreme court of act", "actsc", "canberra"},
}

// complexTerms is legal jargon that must be explained in plain English
var complexTerms = []string{
	"estoppel", "tortfeasor", "chattels", "bailment", "quantum meruit",
	"mandamus", "certiorari", "habeas corpus", "res judicata", "ultra vires",
}

// domainKeywordOrder and domainKeywords classify a query/response into a
// practice area. First matching domain wins, so the order is fixed.
var domainKeywordOrder = []domain.LegalDomain{
	domain.DomainCriminal,
	domain.DomainFamily,
	domain.DomainMigration,
	domain.DomainEmployment,
	domain.DomainProperty,
	domain.DomainCorporate,
	domain.DomainTax,
	domain.DomainConstitutional,
}

var domainKeywords = map[domain.LegalDomain][]string{
	domain.DomainCriminal:       {"criminal", "charge", "offence", "prosecution", "defendant", "guilty", "conviction"},
	domain.DomainFamily:         {"divorce", "custody", "child support", "property settlement", "domestic violence"},
	domain.DomainMigration:      {"visa", "migration", "citizenship", "refugee", "deportation", "immigration"},
	domain.DomainEmployment:     {"employment", "workplace", "unfair dismissal", "discrimination", "wages"},
	domain.DomainProperty:       {"property", "real estate", "lease", "tenant", "landlord", "conveyancing"},
	domain.DomainCorporate:      {"company", "corporation", "director", "shareholder", "asic"},
	domain.DomainTax:            {"tax", "ato", "gst", "income tax", "capital gains", "deduction"},
	domain.DomainConstitutional: {"constitutional", "human rights", "high court", "constitution"},
}

// requiredDisclaimers is the static disclaimer configuration. A disclaimer
// attaches when its domain applies and the answer's risk level meets or
// exceeds its severity.
var requiredDisclaimers = []domain.Disclaimer{
	{
		Content:          "This information is for educational purposes only and does not constitute legal advice. You should consult with a qualified Australian lawyer for advice specific to your situation.",
		Placement:        domain.PlacementFooter,
		Severity:         domain.RiskMedium,
		AppliesToDomains: []domain.LegalDomain{domain.DomainGeneral},
	},
	{
		Content:          "IMPORTANT: Immigration law is complex and changes frequently. This information should not replace professional immigration advice. Consult a registered migration agent or immigration lawyer.",
		Placement:        domain.PlacementHeader,
		Severity:         domain.RiskHigh,
		AppliesToDomains: []domain.LegalDomain{domain.DomainMigration},
	},
	{
		Content:          "WARNING: Criminal law matters have serious consequences. This information is general only. You must seek immediate legal representation from a criminal defence lawyer.",
		Placement:        domain.PlacementHeader,
		Severity:         domain.RiskProfessionalAdvice,
		AppliesToDomains: []domain.LegalDomain{domain.DomainCriminal},
	},
	{
		Content:          "Family law matters are highly fact-specific. This general information cannot replace advice from a family lawyer who understands your specific circumstances.",
		Placement:        domain.PlacementInline,
		Severity:         domain.RiskHigh,
		AppliesToDomains: []domain.LegalDomain{domain.DomainFamily},
	},
	{
		Content:          "Tax law is complex and penalties apply for incorrect advice. This information is general only. Consult a tax agent or tax lawyer for specific advice.",
		Placement:        domain.PlacementInline,
		Severity:         domain.RiskHigh,
		AppliesToDomains: []domain.LegalDomain{domain.DomainTax},
	},
}

// riskPenalties reduce the confidence score per failed check
var riskPenalties = map[domain.RiskLevel]float64{
	domain.RiskLow:                0.05,
	domain.RiskMedium:             0.15,
	domain.RiskHigh:               0.25,
	domain.RiskProfessionalAdvice: 0.40,
}

// complianceService implements the ComplianceService interface
type complianceService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewComplianceService creates a new ComplianceService
func NewComplianceService(logger *slog.Logger) driving.ComplianceService {
	return &complianceService{
		logger: logger,
		now:    time.Now,
	}
}

// Validate runs every compliance check against a response. Checks run
// concurrently but aggregate in a fixed order, so identical inputs always
// produce identical results.
func (s *complianceService) Validate(ctx context.Context, response, query string, metadata map[string]string) (*domain.ValidationResult, error) {
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrInvalidInput)
	}

	checkFns := []func(string, string) domain.ComplianceCheck{
		func(r, q string) domain.ComplianceCheck { return s.checkProhibitedLanguage(r) },
		func(r, q string) domain.ComplianceCheck { return s.validateCitations(r) },
		s.assessAdviceLevel,
		func(r, q string) domain.ComplianceCheck { return s.checkJurisdictionConsistency(r) },
		func(r, q string) domain.ComplianceCheck { return s.validateCurrency(r, metadata) },
		func(r, q string) domain.ComplianceCheck { return s.assessClarity(r) },
	}

	// Fan out into fixed slots; slot order defines aggregation order
	checks := make([]domain.ComplianceCheck, len(checkFns))
	done := make(chan int, len(checkFns))
	for i, fn := range checkFns {
		go func(i int, fn func(string, string) domain.ComplianceCheck) {
			checks[i] = fn(response, query)
			done <- i
		}(i, fn)
	}
	for range checkFns {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	result := &domain.ValidationResult{
		OverallCompliance: domain.RiskLow,
		ChecksPerformed:   checks,
		Warnings:          []domain.ComplianceWarning{},
	}

	for _, check := range checks {
		if !check.Passed {
			result.Warnings = append(result.Warnings, domain.ComplianceWarning{
				CheckID:     check.CheckID,
				Description: check.Description,
				Details:     check.Details,
				RiskLevel:   check.RiskLevel,
			})
		}
		result.OverallCompliance = domain.MaxRisk(result.OverallCompliance, check.RiskLevel)
	}

	result.Domain = classifyLegalDomain(query, response)
	result.RequiredDisclaimers = applicableDisclaimers(result.Domain, result.OverallCompliance)
	result.ConfidenceScore = confidenceScore(checks, result.Warnings)

	s.logger.Debug("compliance validation complete",
		"overall", result.OverallCompliance,
		"domain", result.Domain,
		"warnings", len(result.Warnings),
		"confidence", result.ConfidenceScore)

	return result, nil
}

// checkProhibitedLanguage scans for phrases that would turn information
// into advice
func (s *complianceService) checkProhibitedLanguage(content string) domain.ComplianceCheck {
	contentLower := strings.ToLower(content)
	var violations []string
	for _, phrase := range prohibitedPhrases {
		if strings.Contains(contentLower, phrase) {
			violations = append(violations, phrase)
		}
	}

	passed := len(violations) == 0
	riskLevel := domain.RiskLow
	details := "No prohibited language detected"
	var recommendations []string
	if !passed {
		riskLevel = domain.RiskProfessionalAdvice
		details = fmt.Sprintf("Found %d prohibited phrases: %v", len(violations), violations)
		recommendations = []string{
			"Remove or rephrase prohibited language",
			"Add appropriate disclaimers",
		}
	}

	return domain.ComplianceCheck{
		CheckID:         "prohibited_language",
		Description:     "Check for prohibited language that could constitute legal advice",
		RiskLevel:       riskLevel,
		Passed:          passed,
		Details:         details,
		Recommendations: recommendations,
	}
}

// validateCitations counts well-formed citations by type. Formatting is the
// only check here; cross-referencing against AustLII is a separate concern.
func (s *complianceService) validateCitations(content string) domain.ComplianceCheck {
	total := 0
	valid := 0
	for _, citationType := range citationTypes {
		matches := citationPatterns[citationType].FindAllString(content, -1)
		total += len(matches)
		valid += len(matches)
	}

	accuracy := 1.0
	if total > 0 {
		accuracy = float64(valid) / float64(total)
	}
	passed := accuracy >= 0.9

	riskLevel := domain.RiskLow
	var recommendations []string
	if !passed {
		riskLevel = domain.RiskMedium
		recommendations = []string{
			"Verify all citations against AustLII",
			"Use proper citation format",
		}
	}

	return domain.ComplianceCheck{
		CheckID:         "citation_validation",
		Description:     "Validate legal citations for proper format",
		RiskLevel:       riskLevel,
		Passed:          passed,
		Details:         fmt.Sprintf("Citation accuracy: %.1f%% (%d/%d)", accuracy*100, valid, total),
		Recommendations: recommendations,
	}
}

// assessAdviceLevel weighs directive phrasing against hedged informational
// phrasing, with extra weight when the query asks about a specific situation
func (s *complianceService) assessAdviceLevel(content, query string) domain.ComplianceCheck {
	contentLower := strings.ToLower(content)
	queryLower := strings.ToLower(query)

	adviceCount := 0
	for _, indicator := range adviceIndicators {
		if strings.Contains(contentLower, indicator) {
			adviceCount++
		}
	}
	infoCount := 0
	for _, indicator := range informationIndicators {
		if strings.Contains(contentLower, indicator) {
			infoCount++
		}
	}
	specificQuery := false
	for _, indicator := range specificQueryIndicators {
		if strings.Contains(queryLower, indicator) {
			specificQuery = true
			break
		}
	}

	var riskLevel domain.RiskLevel
	var passed bool
	switch {
	case adviceCount > infoCount && specificQuery:
		riskLevel = domain.RiskProfessionalAdvice
		passed = false
	case adviceCount > 3:
		riskLevel = domain.RiskHigh
		passed = false
	case adviceCount > 1:
		riskLevel = domain.RiskMedium
		passed = true
	default:
		riskLevel = domain.RiskLow
		passed = true
	}

	var recommendations []string
	if !passed {
		recommendations = []string{
			"Rephrase directive language as general information",
			"Add stronger disclaimers about not providing legal advice",
			"Direct user to seek professional legal advice",
		}
	}

	return domain.ComplianceCheck{
		CheckID:     "advice_level_assessment",
		Description: "Assess whether response constitutes legal advice",
		RiskLevel:   riskLevel,
		Passed:      passed,
		Details: fmt.Sprintf("Advice indicators: %d, Information indicators: %d, Specific query: %t",
			adviceCount, infoCount, specificQuery),
		Recommendations: recommendations,
	}
}

// checkJurisdictionConsistency flags answers that mix federal law with
// multiple state laws without distinguishing them
func (s *complianceService) checkJurisdictionConsistency(content string) domain.ComplianceCheck {
	contentLower := strings.ToLower(content)

	var mentioned []string
	jurisdictionOrder := []string{"federal", "nsw", "vic", "qld", "sa", "wa", "tas", "nt", "act"}
	for _, jurisdiction := range jurisdictionOrder {
		for _, keyword := range jurisdictionKeywords[jurisdiction] {
			if strings.Contains(contentLower, keyword) {
				mentioned = append(mentioned, jurisdiction)
				break
			}
		}
	}

	var conflicts []string
	if len(mentioned) > 2 {
		federalMentioned := false
		states := 0
		for _, j := range mentioned {
			if j == "federal" {
				federalMentioned = true
			} else {
				states++
			}
		}
		if federalMentioned && states > 1 {
			conflicts = append(conflicts, "Federal and multiple state laws mentioned without clear distinction")
		}
	}

	passed := len(conflicts) == 0
	riskLevel := domain.RiskLow
	var recommendations []string
	if !passed {
		riskLevel = domain.RiskMedium
		recommendations = []string{
			"Clearly distinguish between federal and state laws",
			"Specify which jurisdiction each piece of information applies to",
		}
	}

	return domain.ComplianceCheck{
		CheckID:         "jurisdiction_consistency",
		Description:     "Check for consistent jurisdiction references",
		RiskLevel:       riskLevel,
		Passed:          passed,
		Details:         fmt.Sprintf("Jurisdictions mentioned: %v, Conflicts: %v", mentioned, conflicts),
		Recommendations: recommendations,
	}
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// validateCurrency flags staleness signals: references to years more
// than a decade old in the text, and a source scraped over a year ago
// when the metadata carries a when_scraped timestamp. Statutes get
// amended; either signal is worth surfacing.
func (s *complianceService) validateCurrency(content string, metadata map[string]string) domain.ComplianceCheck {
	currentYear := s.now().Year()

	var issues []string

	var oldYears []int
	for _, match := range yearPattern.FindAllString(content, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if currentYear-year > 10 {
			oldYears = append(oldYears, year)
		}
	}
	if len(oldYears) > 0 {
		issues = append(issues, fmt.Sprintf("References to dates older than 10 years: %v", oldYears))
	}

	if scrapedAt, ok := metadata["when_scraped"]; ok {
		if scraped, err := time.Parse(time.RFC3339, scrapedAt); err == nil {
			age := int(s.now().Sub(scraped).Hours() / 24)
			if age > 365 {
				issues = append(issues, fmt.Sprintf("Source information is %d days old", age))
			}
		}
	}

	passed := len(issues) == 0
	riskLevel := domain.RiskLow
	details := "Information appears current"
	var recommendations []string
	if !passed {
		riskLevel = domain.RiskMedium
		details = fmt.Sprintf("Currency issues found: %s", strings.Join(issues, "; "))
		recommendations = []string{
			"Verify that cited laws and cases are still current",
			"Add warning about checking current status of laws",
			"Update information from more recent sources",
		}
	}

	return domain.ComplianceCheck{
		CheckID:         "information_currency",
		Description:     "Validate currency of legal information",
		RiskLevel:       riskLevel,
		Passed:          passed,
		Details:         details,
		Recommendations: recommendations,
	}
}

// assessClarity applies simple readability heuristics: sentence length and
// unexplained legal jargon
func (s *complianceService) assessClarity(content string) domain.ComplianceCheck {
	sentences := strings.Split(content, ".")
	words := strings.Fields(content)

	avgSentenceLength := 0.0
	if len(sentences) > 0 {
		avgSentenceLength = float64(len(words)) / float64(len(sentences))
	}
	longSentences := 0
	for _, sentence := range sentences {
		if len(strings.Fields(sentence)) > 25 {
			longSentences++
		}
	}

	contentLower := strings.ToLower(content)
	var unexplainedJargon []string
	for _, term := range complexTerms {
		if strings.Contains(contentLower, term) &&
			!strings.Contains(contentLower, term+" means") &&
			!strings.Contains(contentLower, term+" is") {
			unexplainedJargon = append(unexplainedJargon, term)
		}
	}

	var issues []string
	if avgSentenceLength > 20 {
		issues = append(issues, "Average sentence length too long")
	}
	if float64(longSentences) > float64(len(sentences))*0.3 {
		issues = append(issues, "Too many long sentences")
	}
	if len(unexplainedJargon) > 0 {
		issues = append(issues, fmt.Sprintf("Unexplained legal jargon: %v", unexplainedJargon))
	}

	passed := len(issues) == 0
	riskLevel := domain.RiskLow
	var recommendations []string
	if !passed {
		riskLevel = domain.RiskMedium
		recommendations = []string{
			"Break up long sentences",
			"Explain legal terms in plain English",
			"Use simpler language where possible",
		}
	}

	return domain.ComplianceCheck{
		CheckID:         "clarity_accessibility",
		Description:     "Assess readability and accessibility",
		RiskLevel:       riskLevel,
		Passed:          passed,
		Details:         fmt.Sprintf("Avg sentence length: %.1f, Issues: %v", avgSentenceLength, issues),
		Recommendations: recommendations,
	}
}

// classifyLegalDomain picks the practice area whose keywords appear first
// in the combined query and response text
func classifyLegalDomain(query, content string) domain.LegalDomain {
	text := strings.ToLower(query + " " + content)
	for _, d := range domainKeywordOrder {
		for _, keyword := range domainKeywords[d] {
			if strings.Contains(text, keyword) {
				return d
			}
		}
	}
	return domain.DomainGeneral
}

// applicableDisclaimers selects every disclaimer whose domain applies and
// whose severity the answer's risk level meets or exceeds
func applicableDisclaimers(d domain.LegalDomain, risk domain.RiskLevel) []domain.Disclaimer {
	var out []domain.Disclaimer
	for _, disclaimer := range requiredDisclaimers {
		if !disclaimer.AppliesTo(d) {
			continue
		}
		if risk.Rank() >= disclaimer.Severity.Rank() {
			out = append(out, disclaimer)
		}
	}
	return out
}

// confidenceScore is the passed-check ratio minus per-warning penalties,
// clamped to [0, 1] and rounded to two decimals
func confidenceScore(checks []domain.ComplianceCheck, warnings []domain.ComplianceWarning) float64 {
	if len(checks) == 0 {
		return 0.0
	}

	passed := 0
	for _, check := range checks {
		if check.Passed {
			passed++
		}
	}
	score := float64(passed) / float64(len(checks))

	for _, warning := range warnings {
		penalty, ok := riskPenalties[warning.RiskLevel]
		if !ok {
			penalty = 0.10
		}
		score -= penalty
	}

	if score < 0 {
		score = 0
	}
	return round2(score)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
