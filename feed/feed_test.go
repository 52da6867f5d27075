package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubSource struct {
	name       string
	vulns      []model.VulnerabilityRecord
	advisories []model.AdvisoryRecord
	err        error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchVulnerabilities(_ context.Context, _ Window) ([]model.VulnerabilityRecord, error) {
	return s.vulns, s.err
}

func (s *stubSource) FetchAdvisories(_ context.Context, _ Window) ([]model.AdvisoryRecord, error) {
	return s.advisories, s.err
}

func TestRegistryFetchAllGathersAllSources(t *testing.T) {
	registry := NewRegistry(zap.NewNop(),
		&stubSource{
			name:  "one",
			vulns: []model.VulnerabilityRecord{{ID: "CVE-2024-0001"}},
		},
		&stubSource{
			name:       "two",
			vulns:      []model.VulnerabilityRecord{{ID: "CVE-2024-0002"}},
			advisories: []model.AdvisoryRecord{{ID: "msrc-ADV240001", Vendor: "Microsoft"}},
		},
	)

	vulns, advisories := registry.FetchAll(context.Background(), LastHours(6), LastDays(1))

	if len(vulns) != 2 {
		t.Errorf("got %d vulnerability records, want 2", len(vulns))
	}
	if len(advisories) != 1 {
		t.Errorf("got %d advisories, want 1", len(advisories))
	}
}

func TestRegistryFailingSourceContributesEmpty(t *testing.T) {
	registry := NewRegistry(zap.NewNop(),
		&stubSource{name: "broken", err: errors.New("connection refused")},
		&stubSource{
			name:  "healthy",
			vulns: []model.VulnerabilityRecord{{ID: "CVE-2024-0003"}},
		},
	)

	vulns, advisories := registry.FetchAll(context.Background(), LastHours(6), LastDays(1))

	if len(vulns) != 1 || vulns[0].ID != "CVE-2024-0003" {
		t.Errorf("vulns = %v, want only the healthy source's record", vulns)
	}
	if len(advisories) != 0 {
		t.Errorf("advisories = %v, want none", advisories)
	}
}

func TestRegistryFailureLogsFetchError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	registry := NewRegistry(zap.New(core),
		&stubSource{name: "broken", err: errors.New("connection refused")},
	)

	registry.FetchAll(context.Background(), LastHours(6), LastDays(1))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want one per fetch kind", len(entries))
	}
	for _, entry := range entries {
		if !strings.Contains(entry.Message, "feed source broken failed: connection refused") {
			t.Errorf("log message %q missing the source failure", entry.Message)
		}
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	var err error = &FetchError{Source: "nvd", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("FetchError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "nvd") {
		t.Errorf("Error() = %q, missing the source name", err.Error())
	}
}

func TestNVDFetchVulnerabilities(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"vulnerabilities": [{
				"cve": {
					"id": "CVE-2024-0001",
					"published": "2024-01-15T10:00:00.000",
					"descriptions": [
						{"lang": "es", "value": "descripcion"},
						{"lang": "en", "value": "A flaw in apache http_server."}
					],
					"metrics": {
						"cvssMetricV31": [{"cvssData": {"baseScore": 9.1}}]
					},
					"configurations": [{
						"nodes": [{
							"cpeMatch": [
								{"vulnerable": true, "criteria": "cpe:2.3:a:apache:http_server:2.4.54:*:*:*:*:*:*:*"},
								{"vulnerable": false, "criteria": "cpe:2.3:a:apache:http_server:2.4.55:*:*:*:*:*:*:*"}
							]
						}]
					}],
					"references": [{"url": "https://httpd.apache.org/security"}]
				}
			}]
		}`))
	}))
	defer server.Close()

	source := NewNVDSource("test-key")
	source.BaseURL = server.URL

	window := Window{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
	records, err := source.FetchVulnerabilities(context.Background(), window)
	if err != nil {
		t.Fatalf("FetchVulnerabilities: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	record := records[0]

	if record.ID != "CVE-2024-0001" {
		t.Errorf("ID = %q", record.ID)
	}
	if record.Description != "A flaw in apache http_server." {
		t.Errorf("Description = %q, want the english text", record.Description)
	}
	if record.Score != 9.1 {
		t.Errorf("Score = %v, want 9.1", record.Score)
	}
	if record.Severity != model.SeverityCritical {
		t.Errorf("Severity = %v, want critical", record.Severity)
	}
	if len(record.AffectedPlatforms) != 1 {
		t.Fatalf("AffectedPlatforms = %v, want only the vulnerable criteria", record.AffectedPlatforms)
	}
	if record.AffectedPlatforms[0] != "cpe:2.3:a:apache:http_server:2.4.54:*:*:*:*:*:*:*" {
		t.Errorf("AffectedPlatforms[0] = %q", record.AffectedPlatforms[0])
	}
	if len(record.References) != 1 {
		t.Errorf("References = %v", record.References)
	}

	for _, param := range []string{"pubStartDate", "pubEndDate", "resultsPerPage=2000"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("query %q missing %q", gotQuery, param)
		}
	}
}

func TestNVDFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := NewNVDSource("")
	source.BaseURL = server.URL

	if _, err := source.FetchVulnerabilities(context.Background(), LastHours(6)); err == nil {
		t.Fatal("FetchVulnerabilities succeeded against a 503 endpoint")
	}
}

func TestMSRCFetchAdvisories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"value": [
				{
					"ID": "2024-Jan",
					"DocumentTitle": "January 2024 Security Updates",
					"Alias": "2024-Jan",
					"InitialReleaseDate": "2024-01-09T08:00:00Z",
					"CvrfUrl": "https://api.msrc.microsoft.com/cvrf/v2.0/document/2024-Jan"
				},
				{
					"ID": "2023-Dec",
					"DocumentTitle": "December 2023 Security Updates",
					"Alias": "2023-Dec",
					"InitialReleaseDate": "2023-12-12T08:00:00Z",
					"CvrfUrl": "https://api.msrc.microsoft.com/cvrf/v2.0/document/2023-Dec"
				},
				{
					"ID": "2024-Bad",
					"DocumentTitle": "Update with a broken release date",
					"Alias": "2024-Bad",
					"InitialReleaseDate": "not-a-date",
					"CvrfUrl": "https://api.msrc.microsoft.com/cvrf/v2.0/document/2024-Bad"
				}
			]
		}`))
	}))
	defer server.Close()

	source := NewMSRCSource()
	source.BaseURL = server.URL

	window := Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	advisories, err := source.FetchAdvisories(context.Background(), window)
	if err != nil {
		t.Fatalf("FetchAdvisories: %v", err)
	}

	// The December advisory falls outside the window and the entry with an
	// unparseable release date is skipped
	if len(advisories) != 1 {
		t.Fatalf("got %d advisories, want 1", len(advisories))
	}
	if advisories[0].ID != "msrc-2024-Jan" {
		t.Errorf("ID = %q, want msrc-2024-Jan", advisories[0].ID)
	}
	if advisories[0].Vendor != "Microsoft" {
		t.Errorf("Vendor = %q, want Microsoft", advisories[0].Vendor)
	}
}
