package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table              string
	ID                 string
	Email              string
	FullName           string
	Password           string
	Role               string
	AdminPrivileges    string
	IsActive           string
	SubscriptionStatus string
	SubscriptionPlan   string
	SubscriptionExpiry string
	LastLoginAt        string
	CreatedAt          string
	UpdatedAt          string
	DeletedAt          string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:              "users.account",
	ID:                 "id",
	Email:              "email",
	FullName:           "fullname",
	Password:           "passwordhash",
	Role:               "role",
	AdminPrivileges:    "adminprivileges",
	IsActive:           "isactive",
	SubscriptionStatus: "subscriptionstatus",
	SubscriptionPlan:   "subscriptionplan",
	SubscriptionExpiry: "subscriptionexpiry",
	LastLoginAt:        "lastloginat",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
	DeletedAt:          "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.FullName, t.Password, t.Role, t.AdminPrivileges,
		t.IsActive, t.SubscriptionStatus, t.SubscriptionPlan,
		t.SubscriptionExpiry, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
		t.DeletedAt,
	}
}
