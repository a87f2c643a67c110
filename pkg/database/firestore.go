package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// DocumentClient is the slice of Firestore the repositories use.
type DocumentClient interface {
	Collection(path string) *firestore.CollectionRef
	GetDoc(ctx context.Context, docRef *firestore.DocumentRef) (*firestore.DocumentSnapshot, error)
	CreateDoc(ctx context.Context, docRef *firestore.DocumentRef, data interface{}) (*firestore.WriteResult, error)
	UpdateDoc(ctx context.Context, docRef *firestore.DocumentRef, updates []firestore.Update, preconds ...firestore.Precondition) (*firestore.WriteResult, error)
	DeleteDoc(ctx context.Context, docRef *firestore.DocumentRef, preconds ...firestore.Precondition) (*firestore.WriteResult, error)
	QueryDocs(ctx context.Context, query firestore.Query, fn func(*firestore.DocumentSnapshot) error) error
	Close() error
}

type FirestoreClient struct {
	*firestore.Client
	writeTimeout time.Duration
}

var _ DocumentClient = FirestoreClient{}

func NewFirestoreClient(client *firestore.Client, writeTimeout time.Duration) FirestoreClient {
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	return FirestoreClient{
		Client:       client,
		writeTimeout: writeTimeout,
	}
}

// GetDoc returns the snapshot even when the document does not exist; callers check Exists
// or the NotFound status code.
func (c FirestoreClient) GetDoc(ctx context.Context, docRef *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	return docRef.Get(ctx)
}

func (c FirestoreClient) CreateDoc(ctx context.Context, docRef *firestore.DocumentRef, data interface{}) (*firestore.WriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	return docRef.Create(ctx, data)
}

func (c FirestoreClient) UpdateDoc(ctx context.Context, docRef *firestore.DocumentRef, updates []firestore.Update, preconds ...firestore.Precondition) (*firestore.WriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	return docRef.Update(ctx, updates, preconds...)
}

func (c FirestoreClient) DeleteDoc(ctx context.Context, docRef *firestore.DocumentRef, preconds ...firestore.Precondition) (*firestore.WriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	return docRef.Delete(ctx, preconds...)
}

// QueryDocs runs query and calls fn for each document until the iterator is done or fn fails.
func (c FirestoreClient) QueryDocs(ctx context.Context, query firestore.Query, fn func(*firestore.DocumentSnapshot) error) error {
	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}

		if err := fn(doc); err != nil {
			return err
		}
	}
}
