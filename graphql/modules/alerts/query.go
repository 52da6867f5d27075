// Package alerts defines the GraphQL queries for alerts.
package alerts

import (
	"github.com/cybersecalert/correlator-backend/database"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the alert queries to be mounted in the root schema
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		"alerts": &graphql.Field{
			Type: graphql.NewList(AlertType),
			Args: graphql.FieldConfigArgument{
				"tenant_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"status":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"limit":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				tenantID := p.Args["tenant_id"].(string)
				status := p.Args["status"].(string)
				limit := p.Args["limit"].(int)
				return ResolveAlerts(db, tenantID, status, limit)
			},
		},
		"alertStats": &graphql.Field{
			Type: AlertStatsType,
			Args: graphql.FieldConfigArgument{
				"tenant_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				tenantID := p.Args["tenant_id"].(string)
				return ResolveAlertStats(db, tenantID)
			},
		},
		"tenants": &graphql.Field{
			Type: graphql.NewList(TenantType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveTenants(db)
			},
		},
	}
}
