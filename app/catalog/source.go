package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mytheresa/go-storefront/models"
)

// RemotePath is where the product document lives relative to the base URL.
const RemotePath = "data/productos.json"

// maxDocumentSize bounds how much of a remote response is read.
const maxDocumentSize = 1 << 20

// Source supplies a product list. Sources are tried in order by Load; the
// first that returns a valid list wins.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Product, error)
}

// RemoteSource fetches the product document over HTTP.
type RemoteSource struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		BaseURL: baseURL,
		Timeout: timeout,
		Client:  http.DefaultClient,
	}
}

func (s *RemoteSource) Name() string { return "remote" }

func (s *RemoteSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if s.BaseURL == "" {
		return nil, fmt.Errorf("%w: no base URL configured", models.ErrRemoteFetchFailed)
	}

	base, err := url.Parse(strings.TrimSuffix(s.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRemoteFetchFailed, err)
	}
	target := base.JoinPath(RemotePath).String()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRemoteFetchFailed, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRemoteFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", models.ErrRemoteFetchFailed, target, res.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(io.LimitReader(res.Body, maxDocumentSize)).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRemoteFetchFailed, err)
	}
	if err := validate(products); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRemoteFetchFailed, err)
	}
	return products, nil
}

// SnapshotSource reads the last catalog persisted in the store.
type SnapshotSource struct {
	Store models.Store
}

func (s *SnapshotSource) Name() string { return "snapshot" }

func (s *SnapshotSource) Fetch(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := models.LoadSnapshot(ctx, s.Store, models.ProductsKey, &products); err != nil {
		return nil, err
	}
	if err := validate(products); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCorruptState, err)
	}
	return products, nil
}

// SeedSource serves the built-in product list.
type SeedSource struct{}

func (SeedSource) Name() string { return "seed" }

func (SeedSource) Fetch(context.Context) ([]models.Product, error) {
	return DefaultProducts(), nil
}

var errEmptyList = errors.New("empty product list")

// validate checks a list is non-empty, every product has a code and a
// non-negative price, and no code appears twice.
func validate(products []models.Product) error {
	if len(products) == 0 {
		return errEmptyList
	}
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.Code) == "" {
			return fmt.Errorf("product %d has no code", i)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("product %q has a negative price", p.Code)
		}
		key := strings.ToUpper(p.Code)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("product code %q is repeated", p.Code)
		}
		seen[key] = struct{}{}
	}
	return nil
}
