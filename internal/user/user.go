package user

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles recognized by the role-gated routes.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// CartData maps item id -> size -> quantity.
type CartData map[string]map[string]int

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password,omitempty"`
	CartData CartData           `bson:"cartData" json:"cartData"`
	Role     string             `bson:"role" json:"role"`
	VendorID string             `bson:"vendorId,omitempty" json:"vendorId,omitempty"`
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
