package utils

import (
	"strings"
)

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func IsValidRole(role string) bool {
	validRoles := []string{"admin", "member"}
	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}
