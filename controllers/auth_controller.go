// Package controllers controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"mentora-hub/auth"
	"mentora-hub/logger"
	"mentora-hub/middleware"
	"mentora-hub/services"
)

// AuthController handles sign-in, sign-up and sign-out.
type AuthController struct {
	Users services.UserServiceInterface
}

// NewAuthController creates the auth handlers.
func NewAuthController(users services.UserServiceInterface) *AuthController {
	return &AuthController{Users: users}
}

// ShowLogin renders the sign-in form.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Next": safeNext(c.Query("next"))})
}

// Login verifies the credentials and stores uid and email in the session.
// Admins land on the dashboard, everyone else on the home page.
func (ac *AuthController) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	if email == "" || password == "" {
		logger.Warn.Println("[Login] Missing email or password")
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Please fill in all fields.", "Email": email, "Next": next})
		return
	}

	user, err := ac.Users.SignIn(c.Request.Context(), email, password)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Sign-in failed, please try again."
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status, msg = http.StatusUnauthorized, "Invalid email or password."
		}
		logger.Warn.Printf("[Login] sign-in failed for %s: %v", email, err)
		c.HTML(status, "login.html", gin.H{"Error": msg, "Email": email, "Next": next})
		return
	}

	if err := startSession(c, user.UID, user.Email); err != nil {
		logger.Error.Printf("[Login] Failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("[Login] %s signed in as %s", user.Email, user.Role)
	switch {
	case next != "":
		c.Redirect(http.StatusFound, next)
	case user.IsAdmin():
		c.Redirect(http.StatusFound, "/admin/dashboard")
	default:
		c.Redirect(http.StatusFound, "/")
	}
}

// ShowSignup renders the sign-up form.
func (ac *AuthController) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// Signup creates a student account and signs it in.
func (ac *AuthController) Signup(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")

	render := func(status int, msg string) {
		c.HTML(status, "signup.html", gin.H{"Error": msg, "Email": email})
	}

	switch {
	case email == "" || password == "":
		render(http.StatusBadRequest, "Please fill in all fields.")
		return
	case password != confirm:
		render(http.StatusBadRequest, "Passwords do not match.")
		return
	}

	user, err := ac.Users.SignUp(c.Request.Context(), email, password)
	switch {
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, auth.ErrWeakPassword):
		render(http.StatusBadRequest, err.Error())
		return
	case err != nil && user.UID == "":
		logger.Error.Printf("[Signup] sign-up failed for %s: %v", email, err)
		render(http.StatusInternalServerError, "Sign-up failed, please try again.")
		return
	case err != nil:
		// the account exists even though its profile was not saved; it reads as student
		logger.Warn.Printf("[Signup] continuing without profile for %s: %v", user.UID, err)
	}

	if err := startSession(c, user.UID, user.Email); err != nil {
		logger.Error.Printf("[Signup] Failed to save session: %v", err)
		render(http.StatusInternalServerError, "Internal error, please try again.")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if user := session.Get(middleware.SessionEmail); user != nil {
		logger.Info.Printf("[Logout] Logging out user %v", user)
	}
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		logger.Error.Printf("[Logout] Error saving session during logout: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

func startSession(c *gin.Context, uid, email string) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUID, uid)
	session.Set(middleware.SessionEmail, email)
	return session.Save()
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, `\`) {
		return next
	}
	return ""
}
