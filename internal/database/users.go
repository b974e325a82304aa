package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"videotube/internal/auth"
	"videotube/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserAlreadyExists    = errors.New("user with email or username already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrRefreshTokenMismatch = errors.New("refresh token is expired or used")
)

// sanitizedProjection drops the credential fields from a user document.
var sanitizedProjection = bson.M{"password": 0, "refreshToken": 0}

// now is truncated to the millisecond precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// hashPasswordHook runs on every write that sets the password field, so a
// plaintext password never reaches the collection.
func hashPasswordHook(plain string) (string, error) {
	hash, err := auth.HashPassword(plain)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateUserParams struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     string
	CoverImage string
}

func (s *Store) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	hash, err := hashPasswordHook(arg.Password)
	if err != nil {
		return nil, err
	}

	ts := now()
	user := &models.User{
		Username:     normalizeUsername(arg.Username),
		Email:        normalizeEmail(arg.Email),
		FullName:     strings.TrimSpace(arg.FullName),
		Avatar:       arg.Avatar,
		CoverImage:   arg.CoverImage,
		WatchHistory: []primitive.ObjectID{},
		Password:     hash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// GetUserByID returns the full document, credentials included, or nil when
// no user has that id.
func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

// GetSanitizedUserByID returns the user without password and refresh token.
func (s *Store) GetSanitizedUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(sanitizedProjection))
}

// FindUserByLogin matches on username or email, whichever are non-empty. It
// returns nil when neither is given or nothing matches.
func (s *Store) FindUserByLogin(ctx context.Context, username, email string) (*models.User, error) {
	filter := loginFilter(username, email)
	if filter == nil {
		return nil, nil
	}
	return s.findUser(ctx, filter)
}

func (s *Store) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	filter := loginFilter(username, email)
	if filter == nil {
		return false, nil
	}
	n, err := s.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func loginFilter(username, email string) bson.M {
	var or bson.A
	if u := normalizeUsername(username); u != "" {
		or = append(or, bson.M{"username": u})
	}
	if e := normalizeEmail(email); e != "" {
		or = append(or, bson.M{"email": e})
	}
	if len(or) == 0 {
		return nil
	}
	return bson.M{"$or": or}
}

func (s *Store) findUser(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, filter, opts...).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	res, err := s.users.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"refreshToken": token, "updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *Store) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.users.UpdateByID(ctx, id, bson.M{
		"$unset": bson.M{"refreshToken": ""},
		"$set":   bson.M{"updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RotateRefreshToken replaces current with next only if current is still the
// stored value. A user keeps at most one active refresh token, so a token
// that was already rotated out fails with ErrRefreshTokenMismatch.
func (s *Store) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, current, next string) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": id, "refreshToken": current},
		bson.M{"$set": bson.M{"refreshToken": next, "updatedAt": now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRefreshTokenMismatch
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, newPassword string) error {
	hash, err := hashPasswordHook(newPassword)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"password": hash, "updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

type UpdateAccountParams struct {
	FullName *string
	Email    *string
}

func (s *Store) UpdateAccountDetails(ctx context.Context, id primitive.ObjectID, arg UpdateAccountParams) (*models.User, error) {
	set := bson.M{"updatedAt": now()}
	if arg.FullName != nil {
		set["fullname"] = strings.TrimSpace(*arg.FullName)
	}
	if arg.Email != nil {
		set["email"] = normalizeEmail(*arg.Email)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(sanitizedProjection)

	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar stores a new avatar URL and returns the updated user together
// with the URL it replaced.
func (s *Store) UpdateAvatar(ctx context.Context, id primitive.ObjectID, url string) (*models.User, string, error) {
	return s.replaceImage(ctx, id, "avatar", url)
}

// UpdateCoverImage is UpdateAvatar for the cover image.
func (s *Store) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*models.User, string, error) {
	return s.replaceImage(ctx, id, "coverImage", url)
}

func (s *Store) replaceImage(ctx context.Context, id primitive.ObjectID, field, url string) (*models.User, string, error) {
	ts := now()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(sanitizedProjection)

	var user models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: url, "updatedAt": ts}},
		opts,
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	var previous string
	switch field {
	case "avatar":
		previous, user.Avatar = user.Avatar, url
	case "coverImage":
		previous, user.CoverImage = user.CoverImage, url
	}
	user.UpdatedAt = ts

	return &user, previous, nil
}
