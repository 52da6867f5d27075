package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
)

// MSRCSource fetches security advisories from the Microsoft Security
// Response Center CVRF updates API
type MSRCSource struct {
	BaseURL string
	Client  *http.Client
}

// NewMSRCSource creates an MSRC source with the standard endpoint and a 30s
// request timeout
func NewMSRCSource() *MSRCSource {
	return &MSRCSource{
		BaseURL: "https://api.msrc.microsoft.com/cvrf/v2.0/updates",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the source in logs
func (s *MSRCSource) Name() string { return "msrc" }

// FetchVulnerabilities is a no-op: MSRC publishes vendor advisories only
func (s *MSRCSource) FetchVulnerabilities(_ context.Context, _ Window) ([]model.VulnerabilityRecord, error) {
	return nil, nil
}

type msrcResponse struct {
	Value []struct {
		ID                 string `json:"ID"`
		DocumentTitle      string `json:"DocumentTitle"`
		Alias              string `json:"Alias"`
		InitialReleaseDate string `json:"InitialReleaseDate"`
		CvrfURL            string `json:"CvrfUrl"`
	} `json:"value"`
}

// FetchAdvisories fetches Microsoft security updates released inside the window
func (s *MSRCSource) FetchAdvisories(ctx context.Context, w Window) ([]model.AdvisoryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("msrc returned status %d", resp.StatusCode)
	}

	var payload msrcResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode msrc response: %w", err)
	}

	var advisories []model.AdvisoryRecord
	for _, update := range payload.Value {
		published, err := time.Parse(time.RFC3339, update.InitialReleaseDate)
		if err != nil {
			// Window filtering is meaningless without a release date
			continue
		}
		if published.Before(w.Start) || published.After(w.End) {
			continue
		}

		id := update.ID
		if id == "" {
			id = update.Alias
		}
		if id == "" {
			continue
		}

		advisories = append(advisories, model.AdvisoryRecord{
			ID:        "msrc-" + id,
			Vendor:    "Microsoft",
			Title:     update.DocumentTitle,
			Severity:  model.SeverityUnknown,
			Published: published,
			SourceURL: update.CvrfURL,
		})
	}

	return advisories, nil
}
