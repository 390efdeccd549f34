package handlers

import (
	"glimmer/internal/config"
	"glimmer/internal/payments"
	"glimmer/internal/repos"
)

type Deps struct {
	ProductHandler *ProductHandler
	PaymentHandler *PaymentHandler
	OrderHandler   *OrderHandler
	PreviewHandler *PreviewHandler
}

func NewDeps(store repos.Store, gw *payments.Gateway, cfg config.Config) *Deps {
	return &Deps{
		ProductHandler: &ProductHandler{Store: store},
		PaymentHandler: &PaymentHandler{Gateway: gw, Cfg: cfg},
		OrderHandler:   &OrderHandler{Store: store},
		PreviewHandler: &PreviewHandler{Store: store},
	}
}
