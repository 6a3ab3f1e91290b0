package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// 聚合阶段构造函数，集中管理 pipeline 的拼装方式

func matchStage(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

func sortStage(sort bson.D) bson.D {
	return bson.D{{Key: "$sort", Value: sort}}
}

func skipStage(n int64) bson.D {
	return bson.D{{Key: "$skip", Value: n}}
}

func limitStage(n int64) bson.D {
	return bson.D{{Key: "$limit", Value: n}}
}

func projectStage(fields bson.D) bson.D {
	return bson.D{{Key: "$project", Value: fields}}
}

func countStage(field string) bson.D {
	return bson.D{{Key: "$count", Value: field}}
}

// lookupStage 左连接 from 集合，sub 非空时作为子 pipeline 作用于被连接文档
func lookupStage(from, localField, foreignField, as string, sub mongo.Pipeline) bson.D {
	spec := bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}
	if len(sub) > 0 {
		spec = append(spec, bson.E{Key: "pipeline", Value: sub})
	}
	return bson.D{{Key: "$lookup", Value: spec}}
}

// lookupCount 按 _id 连接关联集合，只保留 _id，配合 sizeOf 得到关联数量
func lookupCount(from, foreignField, as string) bson.D {
	return lookupStage(from, "_id", foreignField, as, mongo.Pipeline{
		projectStage(bson.D{{Key: "_id", Value: 1}}),
	})
}

func sizeOf(field string) bson.D {
	return bson.D{{Key: "$size", Value: "$" + field}}
}

func firstOf(field string) bson.D {
	return bson.D{{Key: "$first", Value: "$" + field}}
}

// CountRelated 统计 relatedCollection 中 relatedField 等于 sourceID 的文档数
func CountRelated(ctx context.Context, db *mongo.Database, sourceID bson.ObjectID, relatedCollection, relatedField string) (int64, error) {
	return db.Collection(relatedCollection).CountDocuments(ctx, bson.D{{Key: relatedField, Value: sourceID}})
}
