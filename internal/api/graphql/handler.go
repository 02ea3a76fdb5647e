package graphql

import (
	"net/http"

	"cublex/internal/common"

	"github.com/graphql-go/graphql"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes queries from POST bodies or the GET query string.
type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	switch r.Method {
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
	case http.MethodPost:
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.RespondWithError(w, http.StatusBadRequest, common.PublicMessage(err))
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		common.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if req.Query == "" {
		common.RespondWithError(w, http.StatusBadRequest, "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})
	common.RespondWithJSON(w, http.StatusOK, result)
}
