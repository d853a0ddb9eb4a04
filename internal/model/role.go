package model

// Back-office account roles.  ADMIN unlocks the /v1/admin surface; every
// self-registered account starts as CUSTOMER and ADMIN is granted by hand.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleCustomer
}
