package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainblock "staybook/internal/domain/block"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

const blocksCollection = "blocks"

type BlockRepository struct {
	col *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{col: db.Collection(blocksCollection)}
}

func (r *BlockRepository) ByID(ctx context.Context, id domainblock.BlockID) (*domainblock.Block, error) {
	var doc blockDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainblock.ErrBlockNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BlockRepository) Save(ctx context.Context, b *domainblock.Block) error {
	doc := newBlockDocument(b)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err == nil {
		b.ClearEvents()
	}
	return err
}

func (r *BlockRepository) Delete(ctx context.Context, id domainblock.BlockID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainblock.ErrBlockNotFound
	}
	return nil
}

func (r *BlockRepository) ListByProperty(ctx context.Context, propertyID domainproperty.PropertyID) ([]*domainblock.Block, error) {
	cur, err := r.col.Find(ctx, bson.M{"property_id": string(propertyID)})
	if err != nil {
		return nil, err
	}
	return decodeBlocks(ctx, cur)
}

func (r *BlockRepository) Overlapping(ctx context.Context, propertyID domainproperty.PropertyID, rng daterange.DateRange, exclude domainblock.BlockID) ([]*domainblock.Block, error) {
	filter := bson.M{
		"property_id": string(propertyID),
		"range.start": bson.M{"$lte": rng.End.UnixMilli()},
		"range.end":   bson.M{"$gte": rng.Start.UnixMilli()},
	}
	if exclude != "" {
		filter["_id"] = bson.M{"$ne": string(exclude)}
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeBlocks(ctx, cur)
}

func decodeBlocks(ctx context.Context, cur *mongo.Cursor) ([]*domainblock.Block, error) {
	defer cur.Close(ctx)
	var out []*domainblock.Block
	for cur.Next(ctx) {
		var doc blockDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type blockDocument struct {
	ID         string        `bson:"_id"`
	PropertyID string        `bson:"property_id"`
	Range      rangeDocument `bson:"range"`
	Reason     string        `bson:"reason,omitempty"`
	CreatedAt  int64         `bson:"created_at"`
	UpdatedAt  int64         `bson:"updated_at"`
}

func newBlockDocument(b *domainblock.Block) blockDocument {
	return blockDocument{
		ID:         string(b.ID),
		PropertyID: string(b.PropertyID),
		Range:      rangeDocument{Start: b.Range.Start.UnixMilli(), End: b.Range.End.UnixMilli()},
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt.UnixMilli(),
		UpdatedAt:  b.UpdatedAt.UnixMilli(),
	}
}

func (d blockDocument) toAggregate() *domainblock.Block {
	return &domainblock.Block{
		ID:         domainblock.BlockID(d.ID),
		PropertyID: domainproperty.PropertyID(d.PropertyID),
		Range:      daterange.DateRange{Start: timestampToTime(d.Range.Start), End: timestampToTime(d.Range.End)},
		Reason:     d.Reason,
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
	}
}
