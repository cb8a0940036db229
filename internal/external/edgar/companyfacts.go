package edgar

import (
	"strings"
	"time"

	"github.com/jwhan/fintab/internal/contracts"
)

// CompanyFactsResponse is the XBRL company-facts payload shape.
// Only the us-gaap taxonomy is consumed; dei and ifrs-full are ignored.
type CompanyFactsResponse struct {
	CIK        int64  `json:"cik"`
	EntityName string `json:"entityName"`
	Facts      struct {
		USGAAP map[string]ConceptFacts `json:"us-gaap"`
	} `json:"facts"`
}

// ConceptFacts holds all reported values for one XBRL concept
type ConceptFacts struct {
	Label       string                 `json:"label"`
	Description string                 `json:"description"`
	Units       map[string][]FactEntry `json:"units"`
}

// FactEntry is one reported value of a concept in one filing
type FactEntry struct {
	Start string   `json:"start"` // may be empty for instant facts
	End   string   `json:"end"`
	Value *float64 `json:"val"`
	Accn  string   `json:"accn"`
	FY    int      `json:"fy"`
	FP    string   `json:"fp"` // FY, Q1, Q2, Q3, Q4
	Form  string   `json:"form"`
	Filed string   `json:"filed"`
}

const factDateLayout = "2006-01-02"

// RawFacts flattens the payload into the shape the mapping stage consumes.
// Entries without an end date or filing date are dropped; entries whose
// form and fiscal period identify neither an annual nor a quarterly
// observation are dropped too.
func (r *CompanyFactsResponse) RawFacts() []contracts.RawFact {
	var out []contracts.RawFact

	for concept, conceptFacts := range r.Facts.USGAAP {
		for unit, entries := range conceptFacts.Units {
			for _, entry := range entries {
				frame, ok := entry.frame()
				if !ok {
					continue
				}

				end, err := time.Parse(factDateLayout, entry.End)
				if err != nil {
					continue
				}

				filed, err := time.Parse(factDateLayout, entry.Filed)
				if err != nil {
					continue
				}

				fact := contracts.RawFact{
					Concept:   concept,
					Value:     entry.Value,
					Unit:      unit,
					PeriodEnd: end,
					FiledAt:   filed,
					Frame:     frame,
				}

				if entry.Start != "" {
					if start, err := time.Parse(factDateLayout, entry.Start); err == nil {
						fact.PeriodStart = &start
					}
				}

				out = append(out, fact)
			}
		}
	}

	return out
}

// frame classifies an entry as annual or quarterly.
// Annual: 10-K filings or fp=FY. Quarterly: Q1..Q4 periods from 10-Q
// filings (Q4 appears when a filer restates quarters inside a 10-K).
func (e FactEntry) frame() (contracts.Frame, bool) {
	fp := strings.ToUpper(e.FP)

	if strings.Contains(e.Form, "10-K") && (fp == "FY" || fp == "") {
		return contracts.FrameAnnual, true
	}
	if fp == "FY" {
		return contracts.FrameAnnual, true
	}

	switch fp {
	case "Q1", "Q2", "Q3", "Q4":
		return contracts.FrameQuarterly, true
	}

	return "", false
}
