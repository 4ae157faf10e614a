package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

const transactionsCollection = "transactions"

type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

type mongoTransaction struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	Description    string             `bson:"description"`
	Date           time.Time          `bson:"date"`
	Amount         float64            `bson:"amount"`
	Category       string             `bson:"category"`
	MeansOfPayment string             `bson:"means_of_payment"`
	Observation    string             `bson:"observation,omitempty"`
	Area           string             `bson:"area,omitempty"`
	IsActive       bool               `bson:"is_active"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now().UTC()
	doc := mongoTransaction{
		UserID:         tx.UserID,
		Description:    tx.Description,
		Date:           tx.Date,
		Amount:         tx.Amount,
		Category:       string(tx.Category),
		MeansOfPayment: string(tx.MeansOfPayment),
		Observation:    tx.Observation,
		Area:           string(tx.Area),
		IsActive:       tx.IsActive,
		CreatedAt:      now.Unix(),
		UpdatedAt:      now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return toDomainTransaction(&doc), nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	var mt mongoTransaction
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return toDomainTransaction(&mt), nil
}

func (r *TransactionRepository) Find(ctx context.Context, filter ports.TransactionFilter) ([]*domain.Transaction, error) {
	query := bson.M{"is_active": true}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		dateRange := bson.M{}
		if !filter.From.IsZero() {
			dateRange["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			dateRange["$lte"] = filter.To
		}
		query["date"] = dateRange
	}

	opts := options.Find().
		SetLimit(filter.Limit).
		SetSkip(filter.Offset).
		SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cur.Close(ctx)

	var txs []*domain.Transaction
	for cur.Next(ctx) {
		var mt mongoTransaction
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		txs = append(txs, toDomainTransaction(&mt))
	}
	return txs, cur.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, id string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Date != nil {
		set["date"] = *in.Date
	}
	if in.Amount != nil {
		set["amount"] = *in.Amount
	}
	if in.Category != nil {
		set["category"] = string(*in.Category)
	}
	if in.MeansOfPayment != nil {
		set["means_of_payment"] = string(*in.MeansOfPayment)
	}
	if in.Observation != nil {
		set["observation"] = *in.Observation
	}
	if in.Area != nil {
		set["area"] = string(*in.Area)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mt mongoTransaction
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return toDomainTransaction(&mt), nil
}

func (r *TransactionRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTransactionNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("deactivate transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func toDomainTransaction(mt *mongoTransaction) *domain.Transaction {
	return &domain.Transaction{
		ID:             mt.ID.Hex(),
		UserID:         mt.UserID,
		Description:    mt.Description,
		Date:           mt.Date,
		Amount:         mt.Amount,
		Category:       domain.Category(mt.Category),
		MeansOfPayment: domain.MeansOfPayment(mt.MeansOfPayment),
		Observation:    mt.Observation,
		Area:           domain.Area(mt.Area),
		IsActive:       mt.IsActive,
		CreatedAt:      unixToTime(mt.CreatedAt),
		UpdatedAt:      unixToTime(mt.UpdatedAt),
	}
}
