// Package alerts defines the GraphQL types for alert queries.
package alerts

import (
	"github.com/graphql-go/graphql"
)

// SeverityType enumerates the alert severity levels
var SeverityType = graphql.NewEnum(graphql.EnumConfig{
	Name: "Severity",
	Values: graphql.EnumValueConfigMap{
		"CRITICAL": &graphql.EnumValueConfig{Value: "critical"},
		"HIGH":     &graphql.EnumValueConfig{Value: "high"},
		"MEDIUM":   &graphql.EnumValueConfig{Value: "medium"},
		"LOW":      &graphql.EnumValueConfig{Value: "low"},
		"UNKNOWN":  &graphql.EnumValueConfig{Value: "unknown"},
	},
})

// AlertType represents one alert document
var AlertType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Alert",
	Fields: graphql.Fields{
		"key":         &graphql.Field{Type: graphql.String},
		"tenant_id":   &graphql.Field{Type: graphql.String},
		"asset_id":    &graphql.Field{Type: graphql.String},
		"cve_id":      &graphql.Field{Type: graphql.String},
		"advisory_id": &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"severity":    &graphql.Field{Type: graphql.String},
		"score":       &graphql.Field{Type: graphql.Float},
		"status":      &graphql.Field{Type: graphql.String},
		"source_url":  &graphql.Field{Type: graphql.String},
		"remediation": &graphql.Field{Type: graphql.String},
		"created_at":  &graphql.Field{Type: graphql.String},
	},
})

// AlertStatsType aggregates alert counts by severity and status
var AlertStatsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AlertStats",
	Fields: graphql.Fields{
		"total":        &graphql.Field{Type: graphql.Int},
		"critical":     &graphql.Field{Type: graphql.Int},
		"high":         &graphql.Field{Type: graphql.Int},
		"medium":       &graphql.Field{Type: graphql.Int},
		"low":          &graphql.Field{Type: graphql.Int},
		"pending":      &graphql.Field{Type: graphql.Int},
		"sent":         &graphql.Field{Type: graphql.Int},
		"failed":       &graphql.Field{Type: graphql.Int},
		"acknowledged": &graphql.Field{Type: graphql.Int},
	},
})

// TenantType represents one tenant document
var TenantType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Tenant",
	Fields: graphql.Fields{
		"key":       &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"full_name": &graphql.Field{Type: graphql.String},
		"company":   &graphql.Field{Type: graphql.String},
		"active":    &graphql.Field{Type: graphql.Boolean},
	},
})
