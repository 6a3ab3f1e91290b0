package utils

import "go.mongodb.org/mongo-driver/v2/bson"

// IsValidID 判断字符串是否为合法的文档 ID（24 位十六进制 ObjectID）
func IsValidID(value string) bool {
	_, err := bson.ObjectIDFromHex(value)
	return err == nil
}

// ParseID 解析文档 ID，非法时返回 ok=false
func ParseID(value string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(value)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}
