package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cybersecalert/correlator-backend/model"
)

func TestNVDProviderEnrich(t *testing.T) {
	var gotCveID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCveID = r.URL.Query().Get("cveId")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"vulnerabilities": [{
				"cve": {
					"metrics": {
						"cvssMetricV31": [{
							"cvssData": {"baseScore": 9.1, "vectorString": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:N"},
							"exploitabilityScore": 3.9
						}]
					},
					"references": [
						{"url": "https://httpd.apache.org/security/vulnerabilities_24.html"},
						{"url": "https://example.com/second"}
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	provider := NewNVDProvider("key")
	provider.BaseURL = server.URL

	enrichment, err := provider.Enrich(context.Background(), "CVE-2024-0001")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if gotCveID != "CVE-2024-0001" {
		t.Errorf("cveId param = %q", gotCveID)
	}
	if enrichment.Score != 9.1 {
		t.Errorf("Score = %v, want 9.1", enrichment.Score)
	}
	if enrichment.Exploitability != 3.9 {
		t.Errorf("Exploitability = %v, want 3.9", enrichment.Exploitability)
	}
	if enrichment.Remediation != "https://httpd.apache.org/security/vulnerabilities_24.html" {
		t.Errorf("Remediation = %q, want the first reference", enrichment.Remediation)
	}
}

func TestNVDProviderScoreFromVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"vulnerabilities": [{
				"cve": {
					"metrics": {
						"cvssMetricV31": [{
							"cvssData": {"baseScore": 0, "vectorString": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}
						}]
					}
				}
			}]
		}`))
	}))
	defer server.Close()

	provider := NewNVDProvider("")
	provider.BaseURL = server.URL

	enrichment, err := provider.Enrich(context.Background(), "CVE-2024-0002")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if enrichment.Score != 9.8 {
		t.Errorf("Score = %v, want 9.8 recomputed from the vector", enrichment.Score)
	}
}

func TestNVDProviderUnknownCVE(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vulnerabilities": []}`))
	}))
	defer server.Close()

	provider := NewNVDProvider("")
	provider.BaseURL = server.URL

	enrichment, err := provider.Enrich(context.Background(), "CVE-0000-0000")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if enrichment != (model.Enrichment{}) {
		t.Errorf("enrichment = %+v, want zero value", enrichment)
	}
}

func TestNVDProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewNVDProvider("")
	provider.BaseURL = server.URL

	if _, err := provider.Enrich(context.Background(), "CVE-2024-0001"); err == nil {
		t.Fatal("Enrich succeeded against a 429 endpoint")
	}
}
