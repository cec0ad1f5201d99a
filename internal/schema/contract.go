package schema

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// ErrContractLoad is returned when the contract cannot be read, parsed or
// is not a valid OpenAPI 3 document.
var ErrContractLoad = errors.New("failed to load API contract")

// Contract is a loaded and validated OpenAPI document with its router.
// It is immutable and safe for concurrent use.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
	source string
}

// Load reads the contract from a file path or an http(s) URL.
func Load(ctx context.Context, location string) (*Contract, error) {
	RegisterFormats()

	loader := openapi3.NewLoader()
	loader.Context = ctx

	var (
		doc *openapi3.T
		err error
	)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		u, perr := url.Parse(location)
		if perr != nil {
			return nil, fmt.Errorf("%w: invalid url %q: %v", ErrContractLoad, location, perr)
		}
		loader.IsExternalRefsAllowed = true
		doc, err = loader.LoadFromURI(u)
	} else {
		doc, err = loader.LoadFromFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContractLoad, location, err)
	}

	return newContract(ctx, doc, location)
}

// LoadData parses a contract held in memory. source names it in errors and logs.
func LoadData(ctx context.Context, data []byte, source string) (*Contract, error) {
	RegisterFormats()

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContractLoad, source, err)
	}

	return newContract(ctx, doc, source)
}

func newContract(ctx context.Context, doc *openapi3.T, source string) (*Contract, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContractLoad, source, err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContractLoad, source, err)
	}

	return &Contract{doc: doc, router: router, source: source}, nil
}

// Source returns where the contract was loaded from.
func (c *Contract) Source() string {
	return c.source
}

// Title returns the contract's info title.
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Version returns the contract's info version.
func (c *Contract) Version() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Version
}

// Operations returns the number of operations the contract declares.
func (c *Contract) Operations() int {
	n := 0
	for _, item := range c.doc.Paths.Map() {
		n += len(item.Operations())
	}
	return n
}

// Document returns the resolved contract encoded as JSON, which is also
// valid YAML.
func (c *Contract) Document() ([]byte, error) {
	return c.doc.MarshalJSON()
}
