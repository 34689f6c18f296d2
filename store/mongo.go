package store

import (
	"context"
	"time"

	"fixmyward-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sessionKey identifies the single session document. The session
// collection holds at most one record.
const sessionKey = "current"

// MongoStore is the production Store backed by the users, issues and
// session collections of a MongoDB database.
type MongoStore struct {
	users   *mongo.Collection
	issues  *mongo.Collection
	session *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:   db.Collection("users"),
		issues:  db.Collection("issues"),
		session: db.Collection("session"),
	}
}

// EnsureIndexes creates the unique email index on users and the id
// indexes used by lookups.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.issues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	})
	return err
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) AppendUser(ctx context.Context, user models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	cursor, err := s.issues.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *MongoStore) AppendIssue(ctx context.Context, issue models.Issue) error {
	_, err := s.issues.InsertOne(ctx, issue)
	return err
}

func (s *MongoStore) ReplaceIssue(ctx context.Context, issue models.Issue) error {
	issue.UpdatedAt = time.Now()
	// Unknown ids match nothing and the replace is a no-op by contract.
	_, err := s.issues.ReplaceOne(ctx, bson.M{"id": issue.ID}, issue)
	return err
}

func (s *MongoStore) FindIssueByID(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	err := s.issues.FindOne(ctx, bson.M{"id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *MongoStore) GetSession(ctx context.Context) (*models.User, error) {
	var doc struct {
		User models.User `bson:"user"`
	}
	err := s.session.FindOne(ctx, bson.M{"_id": sessionKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.User, nil
}

func (s *MongoStore) SetSession(ctx context.Context, user *models.User) error {
	if user == nil {
		return s.ClearSession(ctx)
	}
	_, err := s.session.ReplaceOne(
		ctx,
		bson.M{"_id": sessionKey},
		bson.M{"_id": sessionKey, "user": user},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) ClearSession(ctx context.Context) error {
	_, err := s.session.DeleteOne(ctx, bson.M{"_id": sessionKey})
	return err
}
