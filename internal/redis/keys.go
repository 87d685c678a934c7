package redisx

import "fmt"

const ns = "suyay:v1"

func KeyEventSummary(eventID int64) string {
	return fmt.Sprintf("%s:event:%d:summary", ns, eventID)
}

func KeyCategories() string {
	return ns + ":catalog:categories"
}

func KeyRoles() string {
	return ns + ":catalog:roles"
}

func KeyDepartments() string {
	return ns + ":catalog:departments"
}

func KeyIdemPurchase(userID int64, idemKey string) string {
	return fmt.Sprintf("%s:idem:purchases:%d:%s", ns, userID, idemKey)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelEventsChanged() string {
	return ns + ":events:changed"
}
