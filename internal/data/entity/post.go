package entity

import "time"

// Post is editorial content shown on the home page.
type Post struct {
	ID          string    `firestore:"-" db:"id"`
	Title       string    `firestore:"title" db:"title"`
	Excerpt     string    `firestore:"excerpt" db:"excerpt"`
	Content     string    `firestore:"content" db:"content"`
	AuthorUID   string    `firestore:"authorUid" db:"author_uid"`
	AuthorEmail string    `firestore:"authorEmail" db:"author_email"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" db:"created_at"`
	UpdatedAt   time.Time `firestore:"updatedAt,serverTimestamp" db:"updated_at"`
}
