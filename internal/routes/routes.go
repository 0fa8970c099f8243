// Package routes builds the application's navigable paths. Views and handlers
// use these functions instead of formatting URLs by hand.
package routes

import (
	"net/url"
	"strings"
)

func Home() string           { return "/" }
func Users() string          { return "/users" }
func Login() string          { return "/login" }
func Logout() string         { return "/logout" }
func SignUp() string         { return "/signup" }
func ForgotPassword() string { return "/forgot-password" }

// User is the detail page of a single user.
func User(id string) string {
	return "/users/" + url.PathEscape(id)
}

// EditUser is the edit form of a single user.
func EditUser(id string) string {
	return User(id) + "/edit"
}

// DeleteUser is the form action of the delete button.
func DeleteUser(id string) string {
	return User(id) + "/delete"
}

// EmailUser is the form action of the send email button.
func EmailUser(id string) string {
	return User(id) + "/email"
}

// ResetPassword is the link sent in password reset emails.
func ResetPassword(token string) string {
	if token == "" {
		return "/reset-password"
	}
	return "/reset-password?token=" + url.QueryEscape(token)
}

// LoginWithRedirect points at the login page and asks it to come back to
// target afterwards. Non-local targets are dropped.
func LoginWithRedirect(target string) string {
	if !IsLocal(target) || target == Home() {
		return Login()
	}
	return Login() + "?redirectTo=" + url.QueryEscape(target)
}

// IsLocal reports whether target is a path on this site. Scheme-relative
// ("//host") and backslash forms are rejected so they cannot be used as
// open redirects.
func IsLocal(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	return !strings.ContainsAny(target, "\r\n")
}
