package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
	"github.com/google/osv-scanner/pkg/models"
	"github.com/package-url/packageurl-go"
)

// OSVMirrorSource fetches OSV records from an internal mirror endpoint that
// serves a JSON array of OSV vulnerabilities modified since a given time.
// Affected package PURLs become the record's platform identifiers, so OSV
// records match software assets registered with a package identifier.
type OSVMirrorSource struct {
	BaseURL string
	Client  *http.Client
}

// NewOSVMirrorSource creates an OSV mirror source with a 30s request timeout
func NewOSVMirrorSource(baseURL string) *OSVMirrorSource {
	return &OSVMirrorSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the source in logs
func (s *OSVMirrorSource) Name() string { return "osv-mirror" }

// FetchVulnerabilities fetches OSV records modified inside the window
func (s *OSVMirrorSource) FetchVulnerabilities(ctx context.Context, w Window) ([]model.VulnerabilityRecord, error) {
	params := url.Values{}
	params.Set("since", w.Start.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osv mirror returned status %d", resp.StatusCode)
	}

	var vulns []models.Vulnerability
	if err := json.NewDecoder(resp.Body).Decode(&vulns); err != nil {
		return nil, fmt.Errorf("failed to decode osv response: %w", err)
	}

	records := make([]model.VulnerabilityRecord, 0, len(vulns))
	for _, v := range vulns {
		records = append(records, normalizeOSV(v))
	}
	return records, nil
}

// FetchAdvisories is a no-op: OSV publishes package vulnerability records only
func (s *OSVMirrorSource) FetchAdvisories(_ context.Context, _ Window) ([]model.AdvisoryRecord, error) {
	return nil, nil
}

// normalizeOSV converts an OSV vulnerability into a VulnerabilityRecord
func normalizeOSV(v models.Vulnerability) model.VulnerabilityRecord {
	record := model.VulnerabilityRecord{
		ID:        v.ID,
		Title:     v.Summary,
		Severity:  model.SeverityUnknown,
		Published: v.Published,
		SourceURL: "https://osv.dev/vulnerability/" + v.ID,
	}
	if record.Title == "" {
		record.Title = v.ID
	}
	if v.Details != "" {
		record.Description = v.Details
	}

	vectors := make([]string, 0, len(v.Severity))
	for _, sev := range v.Severity {
		vectors = append(vectors, sev.Score)
	}
	if score := util.HighestCVSSScore(vectors); score > 0 {
		record.Score = score
		record.Severity = model.SeverityFromScore(score)
	}

	for _, affected := range v.Affected {
		purl := affected.Package.Purl
		if purl == "" && affected.Package.Name != "" {
			ecosystem := strings.ToLower(string(affected.Package.Ecosystem))
			purl = packageurl.NewPackageURL(ecosystem, "", affected.Package.Name, "", nil, "").ToString()
		}
		if purl != "" && !util.Contains(record.AffectedPlatforms, purl) {
			record.AffectedPlatforms = append(record.AffectedPlatforms, purl)
		}
	}

	for _, ref := range v.References {
		record.References = append(record.References, ref.URL)
	}

	return record
}
