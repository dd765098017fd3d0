package service

// BuildCashflows lays out the policyholder's net flows: premiums out while
// paying, nothing after, and the last death benefit back in the final year.
func BuildCashflows(annualPremium float64, payTerm, totalYears int, deathBenefits []float64) []float64 {
	flows := make([]float64, max(totalYears, 0))
	for y := 1; y <= totalYears; y++ {
		if y <= payTerm {
			flows[y-1] = -annualPremium
		}
	}
	if len(flows) > 0 && len(deathBenefits) > 0 {
		flows[len(flows)-1] += deathBenefits[len(deathBenefits)-1]
	}
	return flows
}
