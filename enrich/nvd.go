package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
)

// NVDProvider enriches CVE records with CVSS and reference data from the
// NVD CVE detail endpoint
type NVDProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewNVDProvider creates an NVD enrichment provider with a 30s request timeout
func NewNVDProvider(apiKey string) *NVDProvider {
	return &NVDProvider{
		BaseURL: "https://services.nvd.nist.gov/rest/json/cves/2.0",
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type nvdDetailResponse struct {
	Vulnerabilities []struct {
		Cve struct {
			Metrics map[string][]struct {
				CvssData struct {
					BaseScore    float64 `json:"baseScore"`
					VectorString string  `json:"vectorString"`
				} `json:"cvssData"`
				ExploitabilityScore float64 `json:"exploitabilityScore"`
			} `json:"metrics"`
			References []struct {
				URL string `json:"url"`
			} `json:"references"`
		} `json:"cve"`
	} `json:"vulnerabilities"`
}

// Enrich looks up the CVE and extracts the base score, exploitability score
// and the first reference URL as a remediation pointer. The base score is
// recomputed from the vector string when the payload omits it.
func (p *NVDProvider) Enrich(ctx context.Context, cveID string) (model.Enrichment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?cveId="+cveID, nil)
	if err != nil {
		return model.Enrichment{}, err
	}
	if p.APIKey != "" {
		req.Header.Set("apiKey", p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return model.Enrichment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Enrichment{}, fmt.Errorf("nvd enrichment returned status %d", resp.StatusCode)
	}

	var payload nvdDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Enrichment{}, fmt.Errorf("failed to decode nvd enrichment response: %w", err)
	}

	if len(payload.Vulnerabilities) == 0 {
		return model.Enrichment{}, nil
	}

	cve := payload.Vulnerabilities[0].Cve
	enrichment := model.Enrichment{}

	for _, version := range []string{"cvssMetricV31", "cvssMetricV30", "cvssMetricV2"} {
		metrics := cve.Metrics[version]
		if len(metrics) == 0 {
			continue
		}
		metric := metrics[0]
		enrichment.Score = metric.CvssData.BaseScore
		if enrichment.Score == 0 {
			enrichment.Score = util.CalculateCVSSScore(metric.CvssData.VectorString)
		}
		enrichment.Exploitability = metric.ExploitabilityScore
		break
	}

	if len(cve.References) > 0 {
		enrichment.Remediation = cve.References[0].URL
	}

	return enrichment, nil
}
