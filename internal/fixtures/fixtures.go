// Package fixtures loads the named data files the suite runs against and
// exposes helpers that hand out canned or randomized test values.
package fixtures

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/swaglabs-qa/storefront-e2e/internal/api"
	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

//go:embed data/*.yaml
var embedded embed.FS

// Fixture errors
var (
	ErrUnknownFixture  = errors.New("unknown fixture")
	ErrUnknownEndpoint = errors.New("unknown mock endpoint")
	ErrInvalidFixture  = errors.New("invalid fixture")
)

// Payload is a canned HTTP response
type Payload struct {
	StatusCode int               `yaml:"statusCode" json:"statusCode" validate:"gte=100,lte=599"`
	Body       any               `yaml:"body" json:"body"`
	Headers    map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// CheckoutFixture holds the default customer and pools for random customers
type CheckoutFixture struct {
	CustomerInfo models.CheckoutInfo `yaml:"customer_info"`
	Random       struct {
		FirstNames  []string `yaml:"firstNames" validate:"min=1"`
		LastNames   []string `yaml:"lastNames" validate:"min=1"`
		PostalCodes []string `yaml:"postalCodes" validate:"min=1"`
	} `yaml:"random"`
}

// UserFixture is the users file
type UserFixture struct {
	ValidUsers   map[models.UserKind]models.User `yaml:"validUsers" validate:"required,dive"`
	InvalidUsers map[string]models.User          `yaml:"invalidUsers"`
	Checkout     CheckoutFixture                 `yaml:"checkout"`
}

// ProductFixture is the products file
type ProductFixture struct {
	Products      []models.Product `yaml:"products" validate:"required,min=1,dive"`
	MockScenarios map[string]any   `yaml:"mockScenarios"`
}

// CartFixture is the cart file
type CartFixture struct {
	Carts         map[string]models.Cart `yaml:"carts" validate:"required,dive"`
	MockScenarios map[string]Payload     `yaml:"mockScenarios" validate:"dive"`
}

// APIResponses maps endpoint name to scenario name to payload
type APIResponses map[string]map[string]Payload

// ReqresFixture seeds the local fake of the REST API
type ReqresFixture struct {
	Users     []api.User     `yaml:"users" validate:"required,min=1"`
	Resources []api.Resource `yaml:"resources" validate:"required,min=1"`
	Support   api.Support    `yaml:"support"`
	Token     string         `yaml:"token" validate:"required"`
}

// Set is a directory of fixture files
type Set struct {
	fsys     fs.FS
	validate *validator.Validate
}

// Embedded returns the fixtures compiled into the binary
func Embedded() *Set {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return newSet(sub)
}

// FromDir returns fixtures read from dir at load time
func FromDir(dir string) *Set {
	return newSet(os.DirFS(dir))
}

// Open returns FromDir(dir), or the embedded set when dir is empty
func Open(dir string) *Set {
	if dir == "" {
		return Embedded()
	}
	return FromDir(dir)
}

func newSet(fsys fs.FS) *Set {
	return &Set{
		fsys:     fsys,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load decodes the fixture called name into v
func (s *Set) Load(name string, v any) error {
	data, err := fs.ReadFile(s.fsys, name+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrUnknownFixture, name)
	}
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return nil
}

func (s *Set) loadValid(name string, v any) error {
	if err := s.Load(name, v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFixture, name, err)
	}
	return nil
}

// Users loads the users fixture
func (s *Set) Users() (*UserFixture, error) {
	var f UserFixture
	if err := s.loadValid("users", &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Products loads the products fixture
func (s *Set) Products() (*ProductFixture, error) {
	var f ProductFixture
	if err := s.loadValid("products", &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Carts loads the cart fixture and checks every cart adds up
func (s *Set) Carts() (*CartFixture, error) {
	var f CartFixture
	if err := s.loadValid("cart", &f); err != nil {
		return nil, err
	}
	for name, cart := range f.Carts {
		if err := cart.Verify(); err != nil {
			return nil, fmt.Errorf("%w: cart %s: %v", ErrInvalidFixture, name, err)
		}
	}
	return &f, nil
}

// APIResponses loads the canned API responses
func (s *Set) APIResponses() (APIResponses, error) {
	var f APIResponses
	if err := s.Load("api-responses", &f); err != nil {
		return nil, err
	}
	for endpoint, scenarios := range f {
		for scenario, payload := range scenarios {
			if err := s.validate.Struct(payload); err != nil {
				return nil, fmt.Errorf("%w: api-responses %s.%s: %v", ErrInvalidFixture, endpoint, scenario, err)
			}
		}
	}
	return f, nil
}

// Reqres loads the seed data of the fake REST API
func (s *Set) Reqres() (*ReqresFixture, error) {
	var f ReqresFixture
	if err := s.loadValid("reqres", &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Bundle is every fixture file, decoded and validated
type Bundle struct {
	Users     *UserFixture
	Products  *ProductFixture
	Carts     *CartFixture
	Responses APIResponses
	Reqres    *ReqresFixture
}

// LoadBundle reads all fixtures concurrently
func (s *Set) LoadBundle(ctx context.Context) (*Bundle, error) {
	var b Bundle
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) { b.Users, err = s.Users(); return })
	g.Go(func() (err error) { b.Products, err = s.Products(); return })
	g.Go(func() (err error) { b.Carts, err = s.Carts(); return })
	g.Go(func() (err error) { b.Responses, err = s.APIResponses(); return })
	g.Go(func() (err error) { b.Reqres, err = s.Reqres(); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Response returns the canned payload for endpoint and scenario. An unknown
// scenario falls back to "success"; an unknown endpoint is an error.
func (r APIResponses) Response(endpoint, scenario string) (Payload, error) {
	scenarios, ok := r[endpoint]
	if !ok {
		return Payload{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}
	if p, ok := scenarios[scenario]; ok {
		return p, nil
	}
	if p, ok := scenarios["success"]; ok {
		return p, nil
	}
	return Payload{}, fmt.Errorf("%w: %s has no %s or success scenario", ErrUnknownEndpoint, endpoint, scenario)
}
