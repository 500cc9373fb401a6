package source

import (
	"context"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
)

type online struct {
	fetcher ports.Fetcher
	uri     string
}

// Online returns a source that retrieves the document at uri through fetcher.
// An empty uri selects the CLDR repository copy.
func Online(fetcher ports.Fetcher, uri string) ports.Source {
	if uri == "" {
		uri = domain.DefaultResourceURI
	}
	return &online{fetcher: fetcher, uri: uri}
}

func (o *online) Name() string { return domain.SourceOnline }

func (o *online) DefaultPolicy() domain.Policy { return domain.LenientPolicy() }

func (o *online) Load(ctx context.Context) ([]byte, error) {
	return o.fetcher.Retrieve(ctx, o.uri)
}
