package model

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
