// Package facts classifies source-reported accounting facts onto the
// fixed internal metric vocabulary.
package facts

import "github.com/jwhan/fintab/internal/contracts"

// synonyms maps each metric to its accepted concept names in priority
// order. Filers report the same concept under different tags depending on
// taxonomy version and industry; first match wins. Curated static
// configuration, not runtime-discovered.
// SSOT: concept-to-metric mapping lives only in this table
var synonyms = map[contracts.Metric][]string{
	contracts.MetricRevenue: {
		// Standard revenue tags
		"Revenues",
		"SalesRevenueNet",
		"TotalRevenuesAndOtherIncome",
		// Contract-based revenue (common for service companies)
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"RevenueFromContractWithCustomerIncludingAssessedTax",
		// Service revenue (payment companies)
		"ServiceRevenues",
		"RevenueNotFromContractWithCustomerExcludingInterestIncome",
		// Payment-specific revenue
		"ProcessingAndServiceFees",
		"PaymentProcessingRevenues",
		"TransactionProcessingRevenues",
	},
	contracts.MetricGrossProfit: {
		"GrossProfit",
		"GrossProfitLoss",
	},
	contracts.MetricOperatingIncome: {
		"OperatingIncomeLoss",
		"IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
		"OperatingIncomeLossBeforeIncomeTaxExpenseBenefit",
		"IncomeLossFromOperations",
	},
	contracts.MetricNetIncome: {
		"NetIncomeLoss",
		"ProfitLoss",
		"NetIncomeLossAvailableToCommonStockholdersBasic",
		"NetIncomeLossAvailableToCommonStockholdersDiluted",
		"NetIncomeLossAttributableToParent",
		"IncomeLossFromContinuingOperations",
	},
	contracts.MetricDilutedEPS: {
		"EarningsPerShareDiluted",
		"EarningsPerShareBasic",
		"EarningsPerShareBasicAndDiluted",
		"IncomeLossFromContinuingOperationsPerBasicShare",
	},
}

// conceptIndex resolves a concept name to exactly one metric. Built once
// at process start by walking metrics in contracts.MetricOrder; the first
// metric claiming a concept keeps it, so ambiguous synonyms resolve
// deterministically.
var conceptIndex = buildConceptIndex()

func buildConceptIndex() map[string]contracts.Metric {
	index := make(map[string]contracts.Metric)
	for _, metric := range contracts.MetricOrder {
		for _, concept := range synonyms[metric] {
			if _, claimed := index[concept]; !claimed {
				index[concept] = metric
			}
		}
	}
	return index
}

// MetricFor resolves which metric a concept name denotes, if any
func MetricFor(concept string) (contracts.Metric, bool) {
	metric, ok := conceptIndex[concept]
	return metric, ok
}

// Synonyms returns the accepted concept names for a metric in priority
// order. The returned slice must not be mutated.
func Synonyms(metric contracts.Metric) []string {
	return synonyms[metric]
}

// Map classifies raw facts by metric. Unmapped facts are dropped, not an
// error: filings commonly report many concepts outside the tracked
// vocabulary. Pure classification, no numeric transformation.
func Map(raw []contracts.RawFact) map[contracts.Metric][]contracts.RawFact {
	mapped := make(map[contracts.Metric][]contracts.RawFact)
	for _, fact := range raw {
		metric, ok := conceptIndex[fact.Concept]
		if !ok {
			continue
		}
		mapped[metric] = append(mapped[metric], fact)
	}
	return mapped
}
