package entity

import "time"

// Review is one user's rating of a catalog movie. UID and UserEmail come from the
// verified token at creation and never change.
type Review struct {
	ID         string    `firestore:"-" db:"id"`
	MovieID    string    `firestore:"movieId" db:"movie_id"`
	MovieTitle string    `firestore:"movieTitle" db:"movie_title"`
	Rating     int       `firestore:"rating" db:"rating"` // 1-5
	Text       string    `firestore:"text" db:"text"`
	UID        string    `firestore:"uid" db:"uid"`
	UserEmail  string    `firestore:"userEmail" db:"user_email"`
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp" db:"created_at"`
	UpdatedAt  time.Time `firestore:"updatedAt,serverTimestamp" db:"updated_at"`

	// Version is the store's last-write marker, used as a write precondition.
	Version time.Time `firestore:"-" db:"-"`
}

// OwnedBy reports whether uid is the review's creator.
func (r *Review) OwnedBy(uid string) bool {
	return uid != "" && r.UID == uid
}

// ReviewPatch holds the fields an update may replace. Nil means "leave unchanged".
type ReviewPatch struct {
	Rating *int
	Text   *string
}

// Apply copies the provided fields onto r.
func (p ReviewPatch) Apply(r *Review) {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
}
