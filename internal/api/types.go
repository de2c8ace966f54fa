package api

// Post is a blog post as the API returns it. The list endpoint omits
// comments; the single-post endpoint includes author and comments.
type Post struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Author   Author    `json:"author"`
	Comments []Comment `json:"comments"`
}

// Author identifies who wrote a post
type Author struct {
	Name string `json:"name"`
}

// Comment is one comment on a post
type Comment struct {
	ID       string `json:"_id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access string `json:"access"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
}

type detailsResponse struct {
	User *userPayload `json:"user"`
}

type userPayload struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}
