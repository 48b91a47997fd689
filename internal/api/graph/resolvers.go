package graph

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"

	"github.com/hsm-gustavo/users-graphql/internal/api/auth"
	"github.com/hsm-gustavo/users-graphql/internal/api/user"
	"github.com/hsm-gustavo/users-graphql/internal/apperr"
	"github.com/hsm-gustavo/users-graphql/internal/db"
)

const duplicateEmailMessage = "A user with this email already exists"

type Resolver struct {
	store    user.Store
	tokens   *auth.TokenService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewResolver(store user.Store, tokens *auth.TokenService, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:    store,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

type RegisterInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required"`
	Password  string `validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// AuthPayload pairs a freshly issued token with the user it identifies.
type AuthPayload struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

func (r *Resolver) Me(p graphql.ResolveParams) (interface{}, error) {
	claims, ok := auth.ClaimsFromContext(p.Context)
	if !ok {
		return nil, apperr.Unauthenticated("You must be logged in to access this")
	}

	u, err := r.store.FindByID(p.Context, claims.UserID)
	if err != nil {
		return nil, r.internal("Error fetching user", err)
	}
	if u == nil {
		// valid token for an account that no longer exists
		return nil, nil
	}
	return u, nil
}

func (r *Resolver) Users(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.store.ListAll(p.Context)
	if err != nil {
		return nil, r.internal("Error fetching users", err)
	}
	if users == nil {
		users = []*db.User{}
	}
	return users, nil
}

func (r *Resolver) User(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	u, err := r.store.FindByID(p.Context, id)
	if err != nil {
		return nil, r.internal("Error fetching user", err)
	}
	if u == nil {
		return nil, nil
	}
	return u, nil
}

func (r *Resolver) Register(p graphql.ResolveParams) (interface{}, error) {
	input := RegisterInput{
		FirstName: stringArg(p, "firstName"),
		LastName:  stringArg(p, "lastName"),
		Email:     stringArg(p, "email"),
		Password:  stringArg(p, "password"),
	}

	// The duplicate-email check runs before field validation; clients depend
	// on the duplicate message winning when both violations are present.
	existing, err := r.store.FindByEmail(p.Context, input.Email)
	if err != nil {
		return nil, r.internal("Error checking existing user", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(duplicateEmailMessage)
	}

	if err := r.validateRegister(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, r.internal("Error processing password", err)
	}

	created, err := r.store.Create(p.Context, user.CreateFields{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// the unique index catches a concurrent register with the same email
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, apperr.Conflict(duplicateEmailMessage)
		}
		return nil, r.internal("Error creating user", err)
	}

	token, err := r.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return nil, r.internal("Error generating token", err)
	}

	return &AuthPayload{Token: token, User: created}, nil
}

func (r *Resolver) Login(p graphql.ResolveParams) (interface{}, error) {
	input := LoginInput{
		Email:    stringArg(p, "email"),
		Password: stringArg(p, "password"),
	}

	if err := r.validate.Struct(input); err != nil {
		return nil, apperr.InvalidInput("Email and password are required")
	}

	u, err := r.store.FindByEmail(p.Context, input.Email)
	if err != nil {
		return nil, r.internal("Error logging in", err)
	}
	if u == nil {
		return nil, apperr.InvalidCredentials()
	}

	if !auth.VerifyPassword(input.Password, u.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	token, err := r.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, r.internal("Error generating token", err)
	}

	return &AuthPayload{Token: token, User: u}, nil
}

func (r *Resolver) UpdateUser(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	var fields user.UpdateFields
	if v, ok := p.Args["firstName"].(string); ok && v != "" {
		fields.FirstName = &v
	}
	if v, ok := p.Args["lastName"].(string); ok && v != "" {
		fields.LastName = &v
	}
	if v, ok := p.Args["email"].(string); ok && v != "" {
		fields.Email = &v
	}

	updated, err := r.store.UpdateByID(p.Context, id, fields)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, apperr.Conflict(duplicateEmailMessage)
		}
		return nil, r.internal("Error updating user", err)
	}
	if updated == nil {
		return nil, nil
	}
	return updated, nil
}

func (r *Resolver) DeleteUser(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	deleted, err := r.store.DeleteByID(p.Context, id)
	if err != nil {
		return nil, r.internal("Error deleting user", err)
	}
	return deleted, nil
}

// validateRegister maps validator failures onto the two client messages.
// Any missing field wins over a short password.
func (r *Resolver) validateRegister(input RegisterInput) error {
	err := r.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.InvalidInput("Invalid input")
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperr.InvalidInput("All fields are required")
		}
	}
	return apperr.InvalidInput("Password must be at least 6 characters long")
}

// internal logs the cause server-side and hands the client a generic message.
func (r *Resolver) internal(message string, err error) error {
	r.logger.Error("resolver failure", "message", message, "error", err)
	return apperr.Internal(message, err)
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}
