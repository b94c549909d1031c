package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StringValue wraps a string as a DynamoDB attribute
func StringValue(value string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: value}
}

// StringSetValue wraps strings as a DynamoDB string set attribute
func StringSetValue(values ...string) types.AttributeValue {
	return &types.AttributeValueMemberSS{Value: values}
}

// Key builds a primary key from alternating attribute names and string values.
func Key(nameValues ...string) map[string]types.AttributeValue {
	key := make(map[string]types.AttributeValue, len(nameValues)/2)
	for i := 0; i+1 < len(nameValues); i += 2 {
		key[nameValues[i]] = StringValue(nameValues[i+1])
	}
	return key
}
