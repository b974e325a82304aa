package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"videotube/internal/auth"
	"videotube/internal/database"
	"videotube/internal/websocket"
)

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" example:"password123"`
	NewPassword string `json:"newPassword" example:"n3wPassw0rd"`
}

type UpdateAccountRequest struct {
	FullName *string `json:"fullname,omitempty" example:"John Doe"`
	Email    *string `json:"email,omitempty" example:"john@example.com"`
}

// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        changePasswordRequest  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200                    {object}  Response
// @Failure      400                    {object}  Response
// @Failure      401                    {object}  Response
// @Router       /users/change-password [post]
func (s *Server) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) error {
	current := GetUserFromContext(r.Context())
	if current == nil {
		return Unauthorized("Unauthorized request")
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request body")
	}
	if isBlank(req.NewPassword) {
		return BadRequest("New password is required")
	}

	user, err := s.store.GetUserByID(r.Context(), current.ID)
	if err != nil {
		return Internal("Something went wrong", err)
	}
	if user == nil {
		return Unauthorized("Invalid access token")
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.Password) {
		return BadRequest("Invalid old password")
	}

	if err := s.store.UpdatePassword(r.Context(), user.ID, req.NewPassword); err != nil {
		return Internal("Something went wrong while updating the password", err)
	}

	s.publish(r.Context(), user.ID, websocket.EventPasswordChanged, nil)
	respond(w, http.StatusOK, struct{}{}, "Password changed successfully")
	return nil
}

// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=models.User}
// @Failure      401  {object}  Response
// @Router       /users/current-user [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) error {
	user := GetUserFromContext(r.Context())
	if user == nil {
		return Unauthorized("Unauthorized request")
	}

	respond(w, http.StatusOK, user.Sanitized(), "Current user fetched successfully")
	return nil
}

// @Summary      Update account details
// @Description  Updates the full name, the email, or both. At least one must be given.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        updateAccountRequest  body      UpdateAccountRequest  true  "Fields to change"
// @Success      200                   {object}  Response{data=models.User}
// @Failure      400                   {object}  Response
// @Failure      401                   {object}  Response
// @Failure      409                   {object}  Response
// @Router       /users/update-account [patch]
func (s *Server) UpdateAccountDetailsHandler(w http.ResponseWriter, r *http.Request) error {
	current := GetUserFromContext(r.Context())
	if current == nil {
		return Unauthorized("Unauthorized request")
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request body")
	}

	var params database.UpdateAccountParams
	if req.FullName != nil && !isBlank(*req.FullName) {
		params.FullName = req.FullName
	}
	if req.Email != nil && !isBlank(*req.Email) {
		if !validEmail(*req.Email) {
			return BadRequest("email is invalid")
		}
		params.Email = req.Email
	}
	if params.FullName == nil && params.Email == nil {
		return BadRequest("fullname or email is required")
	}

	user, err := s.store.UpdateAccountDetails(r.Context(), current.ID, params)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUserAlreadyExists):
			return Conflict("Email is already in use")
		case errors.Is(err, database.ErrUserNotFound):
			return NotFound("User does not exist")
		}
		return Internal("Something went wrong while updating the account", err)
	}

	s.publish(r.Context(), user.ID, websocket.EventAccountUpdated, map[string]any{
		"fullname": user.FullName,
		"email":    user.Email,
	})
	respond(w, http.StatusOK, user.Sanitized(), "Account details updated successfully")
	return nil
}

// @Summary      Replace avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200     {object}  Response{data=models.User}
// @Failure      400     {object}  Response
// @Failure      401     {object}  Response
// @Failure      500     {object}  Response
// @Router       /users/avatar [patch]
func (s *Server) UpdateAvatarHandler(w http.ResponseWriter, r *http.Request) error {
	return s.replaceImage(w, r, "avatar", "Avatar")
}

// @Summary      Replace cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage  formData  file  true  "Cover image"
// @Success      200         {object}  Response{data=models.User}
// @Failure      400         {object}  Response
// @Failure      401         {object}  Response
// @Failure      500         {object}  Response
// @Router       /users/cover-image [patch]
func (s *Server) UpdateCoverImageHandler(w http.ResponseWriter, r *http.Request) error {
	return s.replaceImage(w, r, "coverImage", "Cover image")
}

func (s *Server) replaceImage(w http.ResponseWriter, r *http.Request, field, label string) error {
	current := GetUserFromContext(r.Context())
	if current == nil {
		return Unauthorized("Unauthorized request")
	}

	if err := s.parseMultipart(w, r); err != nil {
		return err
	}
	defer cleanupMultipart(r)

	asset, err := s.uploadFormFile(r.Context(), r, field)
	if err != nil {
		return uploadError(label, err)
	}
	if asset == nil {
		return BadRequest(label + " file is missing")
	}

	update, eventType := s.store.UpdateAvatar, websocket.EventAvatarUpdated
	if field == "coverImage" {
		update, eventType = s.store.UpdateCoverImage, websocket.EventCoverImageUpdated
	}

	user, previous, err := update(r.Context(), current.ID, asset.URL)
	if err != nil {
		s.destroyAsset(r.Context(), asset.PublicID)
		if errors.Is(err, database.ErrUserNotFound) {
			return NotFound("User does not exist")
		}
		return Internal("Something went wrong while updating the "+strings.ToLower(label), err)
	}

	s.destroyReplaced(r.Context(), previous, asset.URL)

	s.publish(r.Context(), user.ID, eventType, map[string]any{field: asset.URL})
	respond(w, http.StatusOK, user.Sanitized(), label+" updated successfully")
	return nil
}
