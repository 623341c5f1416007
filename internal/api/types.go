package api

// User is a record of the /users collection
type User struct {
	ID        int    `json:"id" yaml:"id"`
	Email     string `json:"email" yaml:"email"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Avatar    string `json:"avatar" yaml:"avatar"`
}

// Resource is a record of the /unknown and /products collections
type Resource struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Year         int    `json:"year" yaml:"year"`
	Color        string `json:"color" yaml:"color"`
	PantoneValue string `json:"pantone_value" yaml:"pantone_value"`
}

// Support is the advertising block attached to read responses
type Support struct {
	URL  string `json:"url" yaml:"url"`
	Text string `json:"text" yaml:"text"`
}

// Page is the envelope of list responses
type Page[T any] struct {
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Data       []T     `json:"data"`
	Support    Support `json:"support"`
}

// Single is the envelope of single-record responses
type Single[T any] struct {
	Data    T       `json:"data"`
	Support Support `json:"support"`
}

// Job is the body of user create and update requests
type Job struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// JobRecord is the echo returned by user create and update requests
type JobRecord struct {
	Name      string `json:"name"`
	Job       string `json:"job"`
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Credentials is the body of register and login requests
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	ID    int    `json:"id,omitempty"`
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

// ProductInput is the body of product create requests
type ProductInput struct {
	Name         string `json:"name"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	PantoneValue string `json:"pantone_value"`
}

// ProductRecord echoes a created product
type ProductRecord struct {
	ProductInput
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

// ErrorBody is the error envelope, including the missing-key variant
type ErrorBody struct {
	Error       string `json:"error"`
	HowToGetOne string `json:"how_to_get_one,omitempty"`
	Message     string `json:"message,omitempty"`
}
