// Package admin implements the interactive command that creates Admin
// accounts. Admins cannot be created over HTTP.
package admin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
	"github.com/JokeryEU/shoplistapp-server/internal/shared"
	"github.com/go-playground/validator/v10"
)

// AdminCreator is the part of UserService the command needs.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

type App struct {
	reader   *bufio.Reader
	out      io.Writer
	users    AdminCreator
	validate *validator.Validate
}

func NewApp(in io.Reader, out io.Writer, users AdminCreator) *App {
	return &App{
		reader:   bufio.NewReader(in),
		out:      out,
		users:    users,
		validate: validator.New(),
	}
}

// CreateAdmin prompts for the account details and stores an Admin user.
func (a *App) CreateAdmin(ctx context.Context) (*models.User, error) {
	email, err := GetSimpleText(a.reader, "Enter admin email", a.out)
	if err != nil {
		return nil, err
	}
	email = services.NormalizeEmail(email)
	if err := a.validate.Var(email, "required,email"); err != nil {
		return nil, common.NewValidationError("email", "Must be a valid email")
	}

	firstName, err := GetSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return nil, err
	}
	lastName, err := GetSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return nil, err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return nil, err
	}
	defer shared.WipeByteArray(password)

	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return nil, err
	}
	defer shared.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return nil, common.NewValidationError("password", "Passwords do not match")
	}
	if len(password) < 8 || len(password) > 72 {
		return nil, common.NewValidationError("password", "Must be 8 to 72 bytes")
	}

	return a.users.CreateAdmin(ctx, services.RegisterInput{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	})
}

// Run executes CreateAdmin and reports the outcome on the output writer.
func (a *App) Run(ctx context.Context) error {
	u, err := a.CreateAdmin(ctx)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return fmt.Errorf("an account with this email already exists")
		}
		return err
	}
	fmt.Fprintf(a.out, "Admin %s created (id=%s)\n", u.Email, u.ID)
	return nil
}
