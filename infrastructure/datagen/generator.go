// Package datagen generates random test data for the UI forms and the user API.
package datagen

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"qa_automation/domain/entities"
)

const (
	PasswordLength = 12
	InvalidEmail   = "not-an-email"
	ShortPassword  = "123"
)

var specialChars = []string{"!", "@", "#", "$", "%", "&", "*", "?", "-", "_"}

// Generator produces fake registrations and users. A seeded generator is reproducible.
type Generator struct {
	faker *gofakeit.Faker
}

// New creates a generator; seed 0 picks a random seed
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Password returns a password of PasswordLength characters containing at least
// one upper case letter, one lower case letter, one digit and one special character
func (g *Generator) Password() string {
	chars := []string{
		strings.ToUpper(g.faker.Letter()),
		strings.ToLower(g.faker.Letter()),
		g.faker.Digit(),
		g.faker.RandomString(specialChars),
	}
	for _, c := range g.faker.Password(true, true, true, true, false, PasswordLength-len(chars)) {
		chars = append(chars, string(c))
	}
	g.faker.ShuffleStrings(chars)
	return strings.Join(chars, "")
}

// Registration returns valid account form data
func (g *Generator) Registration() entities.Registration {
	password := g.Password()
	return entities.Registration{
		FirstName:       g.faker.FirstName(),
		LastName:        g.faker.LastName(),
		Email:           g.faker.Email(),
		Password:        password,
		ConfirmPassword: password,
	}
}

func (g *Generator) InvalidEmailRegistration() entities.Registration {
	r := g.Registration()
	r.Email = InvalidEmail
	return r
}

func (g *Generator) ShortPasswordRegistration() entities.Registration {
	r := g.Registration()
	r.Password = ShortPassword
	r.ConfirmPassword = ShortPassword
	return r
}

func (g *Generator) MismatchedPasswordsRegistration() entities.Registration {
	r := g.Registration()
	r.ConfirmPassword = r.Password + "xyz"
	return r
}

func (g *Generator) EmptyPasswordsRegistration() entities.Registration {
	r := g.Registration()
	r.Password = ""
	r.ConfirmPassword = ""
	return r
}

// User returns a user payload for the user service, without ID
func (g *Generator) User() entities.User {
	return entities.User{
		Name:     g.faker.Name(),
		Username: g.faker.Username(),
		Email:    g.faker.Email(),
		Phone:    g.faker.Phone(),
		Website:  g.faker.DomainName(),
		Address: &entities.Address{
			Street:  g.faker.Street(),
			City:    g.faker.City(),
			Zipcode: g.faker.Zip(),
		},
		Company: &entities.Company{
			Name:        g.faker.Company(),
			CatchPhrase: fmt.Sprintf("%s %s", g.faker.BuzzWord(), g.faker.BS()),
		},
	}
}
