package domain

// Contact is a named person reachable by phone and email.
type Contact struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"`
}

func (c Contact) IsZero() bool {
	return c.Name == "" && c.Phone == "" && c.Email == ""
}
