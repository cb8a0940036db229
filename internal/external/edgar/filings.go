package edgar

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const browseBaseURL = "https://www.sec.gov/cgi-bin/browse-edgar"

// Filing is one row of the EDGAR browse filing list
type Filing struct {
	Form        string    `json:"form"`
	FiledAt     time.Time `json:"filed_at"`
	Description string    `json:"description"`
	DocumentURL string    `json:"document_url"`
}

// RecentFilings scrapes the EDGAR browse page for a company's recent
// filings of one form type. The browse endpoint has no JSON variant,
// so this parses the HTML filing table.
func (c *Client) RecentFilings(ctx context.Context, cik string, formType string, count int) ([]Filing, error) {
	if count <= 0 || count > 100 {
		count = 40
	}

	params := url.Values{}
	params.Set("action", "getcompany")
	params.Set("CIK", cik)
	params.Set("type", formType)
	params.Set("owner", "exclude")
	params.Set("count", fmt.Sprintf("%d", count))

	browseURL := browseBaseURL + "?" + params.Encode()

	body, err := c.get(ctx, browseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch filing list: %w", err)
	}

	filings, err := parseFilingTable(string(body))
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"cik":     cik,
		"form":    formType,
		"filings": len(filings),
	}).Debug("Fetched filing list")

	return filings, nil
}

// parseFilingTable extracts filings from the browse page HTML.
// Table layout: form | documents link | description | filing date | file number
func parseFilingTable(html string) ([]Filing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse filing page: %w", err)
	}

	table := doc.Find("table.tableFile2")
	if table.Length() == 0 {
		// No filings for this form type is an empty result, not an error
		return nil, nil
	}

	var filings []Filing
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		filedText := strings.TrimSpace(cells.Eq(3).Text())
		filedAt, err := time.Parse("2006-01-02", filedText)
		if err != nil {
			return
		}

		filing := Filing{
			Form:        strings.TrimSpace(cells.Eq(0).Text()),
			FiledAt:     filedAt,
			Description: strings.TrimSpace(cells.Eq(2).Text()),
		}

		if href, ok := cells.Eq(1).Find("a").Attr("href"); ok {
			filing.DocumentURL = "https://www.sec.gov" + href
		}

		filings = append(filings, filing)
	})

	return filings, nil
}
