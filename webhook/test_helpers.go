package webhook

import "github.com/stretchr/testify/mock"

// MatchConfig creates a custom matcher for config arguments in mocks
func MatchConfig(matcher func(Config) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchDelivery creates a custom matcher for delivery arguments in mocks
func MatchDelivery(matcher func(Delivery) bool) interface{} {
	return mock.MatchedBy(matcher)
}
