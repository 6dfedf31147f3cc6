package routes

import (
	"fmt"

	"tallerpro/internal/adapter/persistence/repository"
	"tallerpro/internal/domain/entities"
	"tallerpro/internal/domain/status"
	"tallerpro/internal/infrastructure/config"
	"tallerpro/internal/infrastructure/email"
	"tallerpro/internal/infrastructure/payments"
	"tallerpro/internal/infrastructure/session"
	"tallerpro/internal/usecase"
	"tallerpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// BuildDependencies wires the use cases on top of the opened stores. Missing
// email or card gateway configuration is logged and leaves that feature off.
func BuildDependencies(cfg *config.Config, stores repository.Stores, log *zap.Logger) (Dependencies, error) {
	taxRate := cfg.TaxRate
	if taxRate <= 0 {
		taxRate = entities.DefaultTaxRate
	}
	statuses := status.Default()
	if _, ok := statuses.Lookup(cfg.DefaultOrderStatus); !ok {
		return Dependencies{}, fmt.Errorf("DEFAULT_ORDER_STATUS %q is not a known status", cfg.DefaultOrderStatus)
	}

	issuer, err := session.NewJWTIssuer(cfg.SessionSecret)
	if err != nil {
		return Dependencies{}, err
	}

	pins := usecase.NewPINIndexer(cfg.PINKey())

	var sender interfaces.IEmailSender
	if cfg.Email.Enabled() {
		s, err := email.NewResendSender(cfg.Email.APIURL, cfg.Email.APIKey, cfg.Email.From, log)
		if err != nil {
			return Dependencies{}, err
		}
		sender = s
	} else {
		log.Warn("[email][wiring] EMAIL_API_KEY or EMAIL_FROM missing; receipts and send-email are disabled")
	}

	var gateway interfaces.IPaymentGateway
	mp, err := payments.NewMercadoPagoGateway(cfg.Payments, log)
	if err != nil {
		log.Warn("[payment][wiring] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		gateway = mp
	}

	return Dependencies{
		Orders: usecase.NewOrderUseCase(stores.Orders, stores.Ledger, usecase.OrderSettings{
			TaxRate:       taxRate,
			DefaultStatus: cfg.DefaultOrderStatus,
		}, log),
		Ledger: usecase.NewLedgerUseCase(stores.Orders, stores.Ledger, sender, gateway, usecase.LedgerSettings{
			TaxRate:  taxRate,
			ShopName: cfg.ShopName,
		}, log),
		Auth:     usecase.NewAuthUseCase(stores.Users, issuer, pins, cfg.SessionTTL, log),
		Users:    usecase.NewUserUseCase(stores.Users, pins, log),
		Email:    usecase.NewEmailUseCase(sender, log),
		Statuses: statuses,
		TaxRate:  taxRate,
	}, nil
}
