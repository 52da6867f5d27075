// Package graphql assembles the root query schema from the feature modules.
package graphql

import (
	"github.com/cybersecalert/correlator-backend/database"
	"github.com/cybersecalert/correlator-backend/graphql/modules/alerts"
	"github.com/graphql-go/graphql"
)

var db database.DBConnection

// InitDB stores the database connection for the resolvers
func InitDB(conn database.DBConnection) {
	db = conn
}

// CreateSchema builds the root schema by mounting each module's query fields
func CreateSchema() (graphql.Schema, error) {
	rootFields := graphql.Fields{}

	for name, field := range alerts.GetQueryFields(db) {
		rootFields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: rootFields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
