package graphql

import (
	"context"

	"cublex/internal/domain/model"

	"github.com/graphql-go/graphql"
)

// ServerInfoSource provides the live server card exposed as serverInfo.
type ServerInfoSource interface {
	Status(ctx context.Context) model.ServerInfo
}

var serverInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ServerInfo",
	Fields: graphql.Fields{
		"name":       &graphql.Field{Type: graphql.String},
		"version":    &graphql.Field{Type: graphql.String},
		"players":    &graphql.Field{Type: graphql.Int},
		"maxPlayers": &graphql.Field{Type: graphql.Int},
		"uptime":     &graphql.Field{Type: graphql.String},
		"status":     &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the public read-only schema.
func NewSchema(source ServerInfoSource) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello from Cublex GraphQL!", nil
				},
			},
			"serverInfo": &graphql.Field{
				Type: serverInfoType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					info := source.Status(p.Context)
					return map[string]interface{}{
						"name":       info.Name,
						"version":    info.Version,
						"players":    info.OnlinePlayers,
						"maxPlayers": info.MaxPlayers,
						"uptime":     info.Uptime,
						"status":     info.Status,
					}, nil
				},
			},
		},
	})
	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
