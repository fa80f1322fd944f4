package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizarena/apperr"
	"quizarena/models"
)

// QuizStore persists quizzes and the standalone question bank. Quizzes are
// read-only from the duel's perspective.
type QuizStore struct {
	quizzes   *mongo.Collection
	questions *mongo.Collection
}

func NewQuizStore(database *mongo.Database) *QuizStore {
	return &QuizStore{
		quizzes:   database.Collection("quizzes"),
		questions: database.Collection("questions"),
	}
}

// FindByID resolves a quiz by its Mongo _id, falling back to the legacy
// custom string id carried by older documents.
func (s *QuizStore) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz

	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		err = s.quizzes.FindOne(ctx, bson.M{"_id": objectID}).Decode(&quiz)
		if err == nil {
			return &quiz, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Unavailable("failed to fetch quiz", err)
		}
	}

	err := s.quizzes.FindOne(ctx, bson.M{"id": id}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("quiz not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch quiz", err)
	}
	return &quiz, nil
}

// List returns all quizzes without their question arrays.
func (s *QuizStore) List(ctx context.Context) ([]models.Quiz, error) {
	opts := options.Find().SetProjection(bson.M{"questions": 0})
	cursor, err := s.quizzes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Unavailable("failed to list quizzes", err)
	}
	defer cursor.Close(ctx)

	var quizzes []models.Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, apperr.Unavailable("failed to decode quizzes", err)
	}
	return quizzes, nil
}

func (s *QuizStore) Insert(ctx context.Context, quiz *models.Quiz) (string, error) {
	res, err := s.quizzes.InsertOne(ctx, quiz)
	if err != nil {
		return "", apperr.Unavailable("failed to create quiz", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.Unavailable("unexpected quiz id type", nil)
	}
	return id.Hex(), nil
}

func (s *QuizStore) Count(ctx context.Context) (int64, error) {
	count, err := s.quizzes.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Unavailable("failed to count quizzes", err)
	}
	return count, nil
}

func (s *QuizStore) InsertQuestion(ctx context.Context, question *models.Question) (string, error) {
	res, err := s.questions.InsertOne(ctx, question)
	if err != nil {
		return "", apperr.Unavailable("failed to create question", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.Unavailable("unexpected question id type", nil)
	}
	return id.Hex(), nil
}

func (s *QuizStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	cursor, err := s.questions.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Unavailable("failed to list questions", err)
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, apperr.Unavailable("failed to decode questions", err)
	}
	return questions, nil
}

func (s *QuizStore) FindQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("question not found")
	}

	var question models.Question
	err = s.questions.FindOne(ctx, bson.M{"_id": objectID}).Decode(&question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("question not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch question", err)
	}
	return &question, nil
}
