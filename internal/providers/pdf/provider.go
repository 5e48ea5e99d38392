package pdf

import (
	"context"
	"io"
)

type Provider interface {
	GenerateQuote(ctx context.Context, data QuoteData) (io.Reader, error)
	GenerateProposal(ctx context.Context, data ProposalData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateQuote(ctx context.Context, data QuoteData) (io.Reader, error) {
	return nil, nil
}

func (p *NoOpProvider) GenerateProposal(ctx context.Context, data ProposalData) (io.Reader, error) {
	return nil, nil
}
