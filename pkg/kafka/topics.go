package kafka

import "fmt"

// TopicPrefix is the shared prefix for all storefront Kafka topics.
const TopicPrefix = "storefront"

// Topic builds a fully-qualified topic name from a domain and an action,
// e.g. Topic("cart", "item-added") -> "storefront.cart.item-added".
func Topic(domain, action string) string {
	return fmt.Sprintf("%s.%s.%s", TopicPrefix, domain, action)
}
