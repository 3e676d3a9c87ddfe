// internal/models/employee.go
package models

import "strings"

// Employee is a bank staff member. Role is free text such as MANAGER or TELLER.
type Employee struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
