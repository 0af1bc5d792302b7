package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tnguye65/pokecollection/internal/common"
)

func (s *RESTServer) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody("invalid request: "+err.Error()))
		return false
	}
	return true
}

func (s *RESTServer) register(c *gin.Context) {
	var req registerRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusOK, accountResponse{
		Username: user.Username,
		Email:    user.Email,
		Message:  "User registered successfully",
	})
}

func (s *RESTServer) login(c *gin.Context) {
	var req loginRequest
	if !s.bindJSON(c, &req) {
		return
	}

	session, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, accountResponse{
		Username: session.User.Username,
		Email:    session.User.Email,
		Message:  "Login successful",
	})
}

func (s *RESTServer) logout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *RESTServer) me(c *gin.Context) {
	user, err := s.users.GetProfile(c.Request.Context(), callerID(c))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("invalid or expired session"))
			return
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse{Username: user.Username, Email: user.Email})
}

func (s *RESTServer) getProfile(c *gin.Context) {
	user, err := s.users.GetProfile(c.Request.Context(), callerID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (s *RESTServer) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), callerID(c), req.Username, req.Email)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (s *RESTServer) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if !s.bindJSON(c, &req) {
		return
	}

	if err := s.users.ChangePassword(c.Request.Context(), callerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *RESTServer) deleteAccount(c *gin.Context) {
	if err := s.users.DeleteAccount(c.Request.Context(), callerID(c)); err != nil {
		s.writeError(c, err)
		return
	}

	s.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
