package model

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var objectIDPattern = regexp.MustCompile(`^\w{24}$`)

// NewID 生成 24 位十六进制主键（与 Mongo ObjectID 相同格式）
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsObjectID 判断字符串是否符合 24 位主键格式
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}
