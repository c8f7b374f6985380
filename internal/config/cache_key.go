package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QBankPayloadKey returns the cache key for a question bank's full payload
func (r *CacheKeyStruct) QBankPayloadKey(qbankID string) string {
	return fmt.Sprintf("qbank:%s:payload", qbankID)
}

var CacheKey = NewCacheKeyStruct()
