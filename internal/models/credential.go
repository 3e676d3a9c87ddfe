// internal/models/credential.go
package models

// Credential is the login record. It links to exactly one customer or
// employee; PasswordHash is a bcrypt digest, never the plaintext.
type Credential struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CustomerID   *uint  `json:"customer_id,omitempty"`
	EmployeeID   *uint  `json:"employee_id,omitempty"`
}

// Linked reports whether exactly one role link is set.
func (c *Credential) Linked() bool {
	return (c.CustomerID == nil) != (c.EmployeeID == nil)
}
