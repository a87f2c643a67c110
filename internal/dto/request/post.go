package request

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Excerpt string `json:"excerpt" validate:"max=1000"`
	Content string `json:"content" validate:"max=50000"`
}
