package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/agendafacil/agenda-saas/internal/models"
)

// Gateway cria links de pagamento no Mercado Pago para transações IN.
// Token vazio desabilita o recurso sem quebrar o resto da API.
type Gateway struct {
	prefs preference.Client
}

func New(accessToken string) (*Gateway, error) {
	if accessToken == "" {
		return &Gateway{}, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Gateway{prefs: preference.NewClient(cfg)}, nil
}

func (g *Gateway) Enabled() bool {
	return g.prefs != nil
}

// PaymentLink cria uma preferência de checkout para a transação e
// devolve a URL de pagamento
func (g *Gateway) PaymentLink(ctx context.Context, tx *models.FinancialTransaction, payerEmail string) (string, error) {
	req := preference.Request{
		ExternalReference: tx.ReferenceType,
		Items: []preference.ItemRequest{
			{
				Title:     tx.Description,
				Quantity:  1,
				UnitPrice: tx.Amount,
			},
		},
	}
	if payerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: payerEmail}
	}

	resp, err := g.prefs.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.InitPoint, nil
}
