package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

// MovieID accepts both "42" and 42, since catalog ids are numeric.
type MovieID string

func (m *MovieID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MovieID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("movieId must be a string or a number")
	}
	*m = MovieID(n.String())
	return nil
}

type CreateReviewRequest struct {
	MovieID    MovieID `json:"movieId" validate:"required,max=64"`
	MovieTitle string  `json:"movieTitle" validate:"max=300"`
	Rating     *int    `json:"rating" validate:"required,min=1,max=5"`
	Text       string  `json:"text" validate:"max=5000"`
}

// UpdateReviewRequest distinguishes omitted fields (nil) from provided ones.
type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Text   *string `json:"text,omitempty" validate:"omitempty,max=5000"`
}
