package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"videotube/internal/auth"
	"videotube/internal/database"
	"videotube/internal/models"
	"videotube/internal/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username" example:"johndoe"`
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"password123"`
}

type LoginResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

func (s *Server) authCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.config.Cookie.Secure,
	}
}

func (s *Server) setAuthCookies(w http.ResponseWriter, pair auth.TokenPair) {
	http.SetCookie(w, s.authCookie(accessTokenCookie, pair.AccessToken, s.tokens.AccessTTL()))
	http.SetCookie(w, s.authCookie(refreshTokenCookie, pair.RefreshToken, s.tokens.RefreshTTL()))
}

func (s *Server) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		cookie := s.authCookie(name, "", 0)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

// @Summary      Register a new user
// @Description  Creates an account. The avatar is required, the cover image is optional; both are uploaded to the media host.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname    formData  string  true   "Full name"
// @Param        email       formData  string  true   "Email"
// @Param        username    formData  string  true   "Username"
// @Param        password    formData  string  true   "Password"
// @Param        avatar      formData  file    true   "Avatar image"
// @Param        coverImage  formData  file    false  "Cover image"
// @Success      201  {object}  Response{data=models.User}
// @Failure      400  {object}  Response
// @Failure      409  {object}  Response
// @Failure      429  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) error {
	if err := s.parseMultipart(w, r); err != nil {
		return err
	}
	defer cleanupMultipart(r)

	fullname := r.FormValue("fullname")
	email := r.FormValue("email")
	username := r.FormValue("username")
	password := r.FormValue("password")

	if errs := validateRegister(fullname, email, username, password); errs.hasErrors() {
		return ValidationFailed("All fields are required", errs)
	}

	taken, err := s.store.UsernameOrEmailTaken(r.Context(), username, email)
	if err != nil {
		return Internal("Something went wrong while registering the user", err)
	}
	if taken {
		return Conflict("User with email or username already exists")
	}

	avatar, err := s.uploadFormFile(r.Context(), r, "avatar")
	if err != nil {
		return uploadError("Avatar", err)
	}
	if avatar == nil {
		return BadRequest("Avatar file is required")
	}

	coverImage, err := s.uploadFormFile(r.Context(), r, "coverImage")
	if err != nil {
		s.logger.Warn("cover image upload failed, registering without it", zap.Error(err))
	}

	var coverURL, coverID string
	if coverImage != nil {
		coverURL, coverID = coverImage.URL, coverImage.PublicID
	}

	created, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		FullName:   fullname,
		Email:      email,
		Username:   username,
		Password:   password,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
	})
	if err != nil {
		s.destroyAsset(r.Context(), avatar.PublicID)
		s.destroyAsset(r.Context(), coverID)
		if errors.Is(err, database.ErrUserAlreadyExists) {
			return Conflict("User with email or username already exists")
		}
		return Internal("Something went wrong while registering the user", err)
	}

	user, err := s.store.GetSanitizedUserByID(r.Context(), created.ID)
	if err != nil {
		return Internal("Something went wrong while registering the user", err)
	}
	if user == nil {
		return Internal("Something went wrong while registering the user", errors.New("created user not found"))
	}

	respond(w, http.StatusCreated, user.Sanitized(), "User registered successfully")
	return nil
}

// @Summary      Log in
// @Description  Authenticates by username or email and sets the accessToken and refreshToken cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login credentials"
// @Success      200           {object}  Response{data=LoginResponse}
// @Failure      400           {object}  Response
// @Failure      401           {object}  Response
// @Failure      404           {object}  Response
// @Failure      429           {object}  Response
// @Router       /users/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request body")
	}

	if isBlank(req.Username) && isBlank(req.Email) {
		return BadRequest("username or email is required")
	}
	if req.Password == "" {
		return BadRequest("password is required")
	}

	user, err := s.store.FindUserByLogin(r.Context(), req.Username, req.Email)
	if err != nil {
		return Internal("Something went wrong", err)
	}
	if user == nil {
		return NotFound("User does not exist")
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return Unauthorized("Invalid user credentials")
	}

	pair, err := s.startSession(r, user)
	if err != nil {
		return err
	}

	loggedIn, err := s.store.GetSanitizedUserByID(r.Context(), user.ID)
	if err != nil {
		return Internal("Something went wrong", err)
	}
	if loggedIn == nil {
		return NotFound("User does not exist")
	}

	s.setAuthCookies(w, pair)
	respond(w, http.StatusOK, LoginResponse{
		User:         loggedIn.Sanitized(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
	return nil
}

// startSession issues a token pair and makes its refresh token the only one
// the user can redeem.
func (s *Server) startSession(r *http.Request, user *models.User) (auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return auth.TokenPair{}, Internal("Something went wrong while generating tokens", err)
	}
	if err := s.store.SetRefreshToken(r.Context(), user.ID, pair.RefreshToken); err != nil {
		return auth.TokenPair{}, Internal("Something went wrong while generating tokens", err)
	}
	return pair, nil
}

// @Summary      Log out
// @Description  Forgets the stored refresh token and clears both auth cookies.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Router       /users/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) error {
	user := GetUserFromContext(r.Context())
	if user == nil {
		return Unauthorized("Unauthorized request")
	}

	if err := s.store.ClearRefreshToken(r.Context(), user.ID); err != nil && !errors.Is(err, database.ErrUserNotFound) {
		return Internal("Something went wrong", err)
	}

	s.publish(r.Context(), user.ID, websocket.EventSessionEnded, nil)
	s.clearAuthCookies(w)
	respond(w, http.StatusOK, struct{}{}, "User logged out successfully")
	return nil
}

// @Summary      Refresh the access token
// @Description  Exchanges the current refresh token, from the refreshToken cookie or the body, for a new pair. The old refresh token stops working.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refreshTokenRequest  body      RefreshTokenRequest  false  "Refresh token, when not sent as a cookie"
// @Success      200                  {object}  Response{data=auth.TokenPair}
// @Failure      401                  {object}  Response
// @Failure      429                  {object}  Response
// @Router       /users/refresh-token [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) error {
	incoming := refreshTokenFromRequest(r)
	if incoming == "" {
		authRefreshTotal.WithLabelValues("missing").Inc()
		return Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.VerifyRefreshToken(incoming)
	if err != nil {
		authRefreshTotal.WithLabelValues("invalid").Inc()
		return &Error{Status: http.StatusUnauthorized, Message: "invalid refresh token", Err: err}
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		authRefreshTotal.WithLabelValues("invalid").Inc()
		return Unauthorized("invalid refresh token")
	}

	user, err := s.store.GetUserByID(r.Context(), userID)
	if err != nil {
		return Internal("Something went wrong", err)
	}
	if user == nil {
		authRefreshTotal.WithLabelValues("invalid").Inc()
		return Unauthorized("invalid refresh token")
	}

	if user.RefreshToken != incoming {
		authRefreshTotal.WithLabelValues("reused").Inc()
		return Unauthorized("refresh token is expired or used")
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return Internal("Something went wrong while generating tokens", err)
	}

	if err := s.store.RotateRefreshToken(r.Context(), user.ID, incoming, pair.RefreshToken); err != nil {
		if errors.Is(err, database.ErrRefreshTokenMismatch) {
			authRefreshTotal.WithLabelValues("reused").Inc()
			return Unauthorized("refresh token is expired or used")
		}
		return Internal("Something went wrong", err)
	}

	authRefreshTotal.WithLabelValues("ok").Inc()
	s.setAuthCookies(w, pair)
	respond(w, http.StatusOK, pair, "Access token refreshed")
	return nil
}

func refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req RefreshTokenRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		return ""
	}
	return strings.TrimSpace(req.RefreshToken)
}
