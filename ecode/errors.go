package ecode

import (
	"fmt"
)

const (
	notExistMsg = "does not exist"
	deletedMsg  = "deleted"
)

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// Deleted returns deleted message
func Deleted(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], deletedMsg)
	}
	return deletedMsg
}
