package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	key := Key("submitterId", "alice", "counterpartId", "bob")
	assert.Equal(t, map[string]types.AttributeValue{
		"submitterId":   &types.AttributeValueMemberS{Value: "alice"},
		"counterpartId": &types.AttributeValueMemberS{Value: "bob"},
	}, key)

	assert.Len(t, Key("partyId", "alice", "dangling"), 1)
}

func TestStringSetValue(t *testing.T) {
	assert.Equal(t, &types.AttributeValueMemberSS{Value: []string{"a", "b"}}, StringSetValue("a", "b"))
}
