package domain

import "testing"

func TestRiskLevelOrdering(t *testing.T) {
	levels := []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskProfessionalAdvice}
	for i := 1; i < len(levels); i++ {
		if levels[i].Rank() <= levels[i-1].Rank() {
			t.Errorf("expected %s > %s in risk ordering", levels[i], levels[i-1])
		}
	}
}

func TestMaxRisk(t *testing.T) {
	if got := MaxRisk(RiskLow, RiskHigh); got != RiskHigh {
		t.Errorf("MaxRisk(low, high) = %s", got)
	}
	if got := MaxRisk(RiskProfessionalAdvice, RiskMedium); got != RiskProfessionalAdvice {
		t.Errorf("MaxRisk(par, medium) = %s", got)
	}
	if got := MaxRisk(RiskMedium, RiskMedium); got != RiskMedium {
		t.Errorf("MaxRisk(medium, medium) = %s", got)
	}
}

func TestDisclaimerAppliesTo(t *testing.T) {
	d := Disclaimer{AppliesToDomains: []LegalDomain{DomainMigration}}
	if !d.AppliesTo(DomainMigration) {
		t.Error("expected direct domain match")
	}
	if d.AppliesTo(DomainTax) {
		t.Error("unexpected match for unrelated domain")
	}

	general := Disclaimer{AppliesToDomains: []LegalDomain{DomainGeneral}}
	if !general.AppliesTo(DomainTax) {
		t.Error("general_legal disclaimers apply to every domain")
	}
}

func TestDisclaimersByPlacement(t *testing.T) {
	v := &ValidationResult{
		RequiredDisclaimers: []Disclaimer{
			{Content: "a", Placement: PlacementHeader},
			{Content: "b", Placement: PlacementFooter},
			{Content: "c", Placement: PlacementHeader},
		},
	}
	headers := v.DisclaimersByPlacement(PlacementHeader)
	if len(headers) != 2 || headers[0].Content != "a" || headers[1].Content != "c" {
		t.Errorf("header disclaimers out of order: %+v", headers)
	}
	if len(v.DisclaimersByPlacement(PlacementInline)) != 0 {
		t.Error("expected no inline disclaimers")
	}
}
