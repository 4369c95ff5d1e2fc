package entity

const (
	RoleCustomer = "CUSTOMER"
	RolePartner  = "PARTNER"
	RoleAdmin    = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RolePartner, RoleAdmin:
		return true
	}
	return false
}
