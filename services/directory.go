package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/policy"
)

// invalidCredentials is returned for unknown emails and wrong passwords alike
const invalidCredentials = "invalid credentials"

// maxPasswordBytes is the longest password bcrypt accepts
const maxPasswordBytes = 72

// RegisterInput is a registration request
type RegisterInput struct {
	FullName string              `json:"fullName"`
	Email    string              `json:"email"`
	Password string              `json:"password"`
	Role     models.Role         `json:"role"`
	Profile  models.ProfileInput `json:"profile"`
}

// Directory stores identities, roles and role profiles
type Directory struct {
	DB               databases.UserDatabase
	AllowAdminSignup bool
	Cost             int
	Now              func() time.Time
}

// NewDirectory returns a directory over the given user database
func NewDirectory(db databases.UserDatabase, allowAdminSignup bool) *Directory {
	return &Directory{
		DB:               db,
		AllowAdminSignup: allowAdminSignup,
		Cost:             bcrypt.DefaultCost,
		Now:              time.Now,
	}
}

// Register validates and stores a new user
func (d *Directory) Register(ctx context.Context, in RegisterInput) (models.Identity, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var fields []apperrors.FieldError
	if in.FullName == "" {
		fields = append(fields, apperrors.Required("fullName"))
	}
	if in.Email == "" {
		fields = append(fields, apperrors.Required("email"))
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "email is not a valid address"})
	}
	if in.Password == "" {
		fields = append(fields, apperrors.Required("password"))
	} else if len(in.Password) > maxPasswordBytes {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes)})
	}

	var profile models.RoleProfile
	if in.Role == "" {
		fields = append(fields, apperrors.Required("role"))
	} else if p, ok := models.ProfileFor(in.Role, in.Profile); !ok {
		fields = append(fields, apperrors.FieldError{Field: "role", Message: "role must be one of admin, judge, lawyer, litigant"})
	} else {
		profile = p
		for _, f := range p.MissingFields() {
			fields = append(fields, apperrors.Required(f))
		}
	}
	if len(fields) > 0 {
		return models.Identity{}, apperrors.Validation("invalid registration", fields...)
	}

	if profile.Role() == models.RoleAdmin && !d.AllowAdminSignup {
		return models.Identity{}, apperrors.Forbidden("admin accounts cannot be self registered")
	}

	_, err := d.DB.FindOne(ctx, bson.M{"user.email": in.Email})
	if err == nil {
		return models.Identity{}, apperrors.Conflict("email %s is already registered", in.Email)
	}
	if !databases.IsNotFound(err) {
		return models.Identity{}, storeErr("failed to check email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), d.cost())
	if err != nil {
		return models.Identity{}, apperrors.Internal("failed to hash password", err)
	}

	now := primitive.NewDateTimeFromTime(d.Now())
	user := models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			FullName:  in.FullName,
			Email:     in.Email,
			Password:  string(hashed),
			Role:      profile.Role(),
			Profile:   profile.Stored(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := d.DB.InsertOne(ctx, user); err != nil {
		if databases.IsDuplicateKeyOn(err, databases.UserEmailIndex) {
			return models.Identity{}, apperrors.Conflict("email %s is already registered", in.Email)
		}
		return models.Identity{}, storeErr("failed to insert user", err)
	}

	zap.S().Infow("user registered", "userId", user.ID.Hex(), "role", user.Details.Role)
	return user.Identity(), nil
}

// Authenticate checks an email and password pair
func (d *Directory) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.Identity{}, apperrors.Auth(invalidCredentials)
	}

	user, err := d.DB.FindOne(ctx, bson.M{"user.email": email})
	if err != nil {
		if !databases.IsNotFound(err) {
			return models.Identity{}, storeErr("failed to find user", err)
		}
		// keep the response time of unknown emails close to wrong passwords
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return models.Identity{}, apperrors.Auth(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(password)); err != nil {
		return models.Identity{}, apperrors.Auth(invalidCredentials)
	}
	return user.Identity(), nil
}

// Get returns the user with the given hex id
func (d *Directory) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("user %s not found", id)
	}
	return d.byID(ctx, oid)
}

func (d *Directory) byID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := d.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound("user %s not found", id.Hex())
		}
		return nil, storeErr("failed to get user", err)
	}
	return user, nil
}

// List returns a page of users, optionally filtered by role. Admin only.
func (d *Directory) List(ctx context.Context, actor policy.Actor, role models.Role, limit, page int) (*models.UserList, error) {
	if err := policy.AuthorizeRole(actor, policy.OpAdmin); err != nil {
		return nil, err
	}
	filter := bson.M{}
	if role != "" {
		if !role.IsValid() {
			return nil, apperrors.Validation("invalid filter", apperrors.FieldError{Field: "role", Message: "role must be one of admin, judge, lawyer, litigant"})
		}
		filter["user.role"] = role
	}

	limit, page = databases.PageBounds(limit, page)
	total, err := d.DB.CountDocuments(ctx, filter)
	if err != nil {
		return nil, storeErr("failed to count users", err)
	}
	users, err := d.DB.Find(ctx, filter, databases.Paginate(limit, page, "user.createdAt"))
	if err != nil {
		return nil, storeErr("failed to list users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return &models.UserList{Users: users, Pagination: pagination(total, limit, page)}, nil
}

// Delete removes a user. Admin only.
func (d *Directory) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.AuthorizeRole(actor, policy.OpAdmin); err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("user %s not found", id)
	}
	deleted, err := d.DB.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("failed to delete user", err)
	}
	if deleted == 0 {
		return apperrors.NotFound("user %s not found", id)
	}
	zap.S().Infow("user deleted", "userId", id, "by", actor.ID.Hex())
	return nil
}

func (d *Directory) cost() int {
	if d.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return d.Cost
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}

func pagination(total int64, limit, page int) models.Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return models.Pagination{Total: total, Page: page, Pages: pages}
}
