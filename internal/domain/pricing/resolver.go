package pricing

import (
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// DefaultTariffName is shown when the customer has no delivery tariff
// assigned or the assigned code is not in the tariff table.
const DefaultTariffName = "Spedizione Standard"

// Context carries the per-customer pricing parameters resolved once
// per quote: which price list applies, what delivery costs and which
// detraction is subtracted per line.
type Context struct {
	ActiveList    Version
	ActiveListRaw string
	DeliveryCost  types.Money
	TariffName    string
	Detraction    types.Money
}

// CustomerOverrides are the pricing-relevant fields of a customer
// record. Zero values mean "no override".
type CustomerOverrides struct {
	PriceListMode      string
	DeliveryTariffCode string
	DetractionValue    *types.Money
}

// Settings are the installation-wide defaults the overrides fall back
// to. DeliveryTariffs is keyed by tariff name; the customer's tariff
// code is that name.
type Settings struct {
	ActiveList      string
	DeliveryTariffs map[string]types.Money
}

// Resolve merges installation settings with customer overrides.
//
// A customer price_list_mode other than "default" wins over the
// settings' active list. The tariff name defaults to the standard
// shipment and is looked up in the tariff table; an unmapped name
// resolves to zero cost so the quote can still be produced.
func Resolve(settings Settings, customer CustomerOverrides) Context {
	raw := settings.ActiveList
	if mode := customer.PriceListMode; mode != "" && mode != DefaultListMode {
		raw = mode
	}

	tariffName := customer.DeliveryTariffCode
	if tariffName == "" {
		tariffName = DefaultTariffName
	}
	cost, ok := settings.DeliveryTariffs[tariffName]
	if !ok {
		cost = types.Zero()
	}

	out := Context{
		ActiveList:    ParseVersion(raw),
		ActiveListRaw: raw,
		TariffName:    tariffName,
		DeliveryCost:  cost,
		Detraction:    types.Zero(),
	}

	if customer.DetractionValue != nil {
		out.Detraction = *customer.DetractionValue
	}

	return out
}
