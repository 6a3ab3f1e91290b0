package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Subscription 订阅关系，channel 为被订阅的用户
type Subscription struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Subscriber bson.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    bson.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}
