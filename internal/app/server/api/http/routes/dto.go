package routes

import "revhistory/internal/routing"

type listInput struct{}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Routes []routing.Route `json:"routes" doc:"Derived revision routes in registration order"`
}
