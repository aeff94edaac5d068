package domain

import "errors"

var ErrInvalidRequest = errors.New("invalid request")
var ErrEmployeeNotFound = errors.New("employee not found")
var ErrNoEmployeesAtLocation = errors.New("no existing employees for the location")

// Employee is a single row of the ingested roster. Identity is the
// (name, location) pair; there is no stable surrogate key.
type Employee struct {
	Name     string `json:"name" bson:"name"`
	Location string `json:"location" bson:"location"`
}
