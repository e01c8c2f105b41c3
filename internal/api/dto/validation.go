package dto

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func checkFullName(details map[string]any, fullName string) {
	length := utf8.RuneCountInString(strings.TrimSpace(fullName))
	if length < 2 || length > 120 {
		details["full_name"] = "full name must be between 2 and 120 characters"
	}
}

func checkEmail(details map[string]any, email string) {
	if utf8.RuneCountInString(email) > 180 {
		details["email"] = "email must not exceed 180 characters"
		return
	}
	if !emailPattern.MatchString(email) {
		details["email"] = "email should be valid"
	}
}

func checkPassword(details map[string]any, password string) {
	if utf8.RuneCountInString(password) < 6 {
		details["password"] = "password must be at least 6 characters"
	}
}

func checkSubject(details map[string]any, subject string) {
	length := utf8.RuneCountInString(strings.TrimSpace(subject))
	if length < 5 || length > 200 {
		details["subject"] = "subject must be between 5 and 200 characters"
	}
}

func checkDescription(details map[string]any, description string) {
	if utf8.RuneCountInString(strings.TrimSpace(description)) < 10 {
		details["description"] = "description must be at least 10 characters"
	}
}

func checkBody(details map[string]any, body string) {
	if strings.TrimSpace(body) == "" {
		details["body"] = "comment body is required"
	}
}
