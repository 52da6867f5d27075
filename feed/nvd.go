package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
)

const nvdTimeFormat = "2006-01-02T15:04:05.000"

// NVDSource fetches CVE records from the NIST NVD API 2.0
type NVDSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewNVDSource creates an NVD source with the standard endpoint and a 30s
// request timeout
func NewNVDSource(apiKey string) *NVDSource {
	return &NVDSource{
		BaseURL: "https://services.nvd.nist.gov/rest/json/cves/2.0",
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the source in logs
func (s *NVDSource) Name() string { return "nvd" }

// nvdResponse mirrors the slice of the NVD 2.0 payload the normalizer needs
type nvdResponse struct {
	Vulnerabilities []struct {
		Cve nvdCve `json:"cve"`
	} `json:"vulnerabilities"`
}

type nvdCve struct {
	ID           string `json:"id"`
	Published    string `json:"published"`
	Descriptions []struct {
		Lang  string `json:"lang"`
		Value string `json:"value"`
	} `json:"descriptions"`
	Metrics        map[string][]nvdMetric `json:"metrics"`
	Configurations []struct {
		Nodes []struct {
			CpeMatch []struct {
				Vulnerable bool   `json:"vulnerable"`
				Criteria   string `json:"criteria"`
			} `json:"cpeMatch"`
		} `json:"nodes"`
	} `json:"configurations"`
	References []struct {
		URL string `json:"url"`
	} `json:"references"`
}

type nvdMetric struct {
	CvssData struct {
		BaseScore float64 `json:"baseScore"`
	} `json:"cvssData"`
}

// FetchVulnerabilities fetches CVEs published inside the window
func (s *NVDSource) FetchVulnerabilities(ctx context.Context, w Window) ([]model.VulnerabilityRecord, error) {
	params := url.Values{}
	params.Set("pubStartDate", w.Start.Format(nvdTimeFormat))
	params.Set("pubEndDate", w.End.Format(nvdTimeFormat))
	params.Set("resultsPerPage", "2000")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("apiKey", s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nvd returned status %d", resp.StatusCode)
	}

	var payload nvdResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode nvd response: %w", err)
	}

	records := make([]model.VulnerabilityRecord, 0, len(payload.Vulnerabilities))
	for _, v := range payload.Vulnerabilities {
		records = append(records, normalizeNVDCve(v.Cve))
	}
	return records, nil
}

// FetchAdvisories is a no-op: NVD publishes CVE records only
func (s *NVDSource) FetchAdvisories(_ context.Context, _ Window) ([]model.AdvisoryRecord, error) {
	return nil, nil
}

// normalizeNVDCve converts a raw NVD CVE entry into a VulnerabilityRecord
func normalizeNVDCve(cve nvdCve) model.VulnerabilityRecord {
	record := model.VulnerabilityRecord{
		ID:        cve.ID,
		Title:     "CVE " + cve.ID,
		Severity:  model.SeverityUnknown,
		SourceURL: "https://nvd.nist.gov/vuln/detail/" + cve.ID,
	}

	for _, desc := range cve.Descriptions {
		if desc.Lang == "en" {
			record.Description = desc.Value
			break
		}
	}

	// Prefer CVSS v3.1, then v3.0, then v2.0
	for _, version := range []string{"cvssMetricV31", "cvssMetricV30", "cvssMetricV2"} {
		if metrics := cve.Metrics[version]; len(metrics) > 0 {
			record.Score = metrics[0].CvssData.BaseScore
			record.Severity = model.SeverityFromScore(record.Score)
			break
		}
	}

	for _, config := range cve.Configurations {
		for _, node := range config.Nodes {
			for _, match := range node.CpeMatch {
				if match.Vulnerable {
					record.AffectedPlatforms = append(record.AffectedPlatforms, match.Criteria)
				}
			}
		}
	}

	for _, ref := range cve.References {
		record.References = append(record.References, ref.URL)
	}

	if published, err := time.Parse(time.RFC3339, cve.Published); err == nil {
		record.Published = published
	} else if published, err := time.Parse("2006-01-02T15:04:05.000", cve.Published); err == nil {
		record.Published = published
	}

	return record
}
