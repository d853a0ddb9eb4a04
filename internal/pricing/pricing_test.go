package pricing

import (
	"errors"
	"testing"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
)

func TestComputePricing(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name     string
		plan     string
		upsells  Upsells
		services ServiceSelection
		want     Breakdown
	}{
		{
			name:     "essencial with no extras",
			plan:     catalog.PlanEssencial,
			services: NoServices(),
			want:     Breakdown{PlanCents: 8900, TotalCents: 8900},
		},
		{
			name:     "premium with no extras",
			plan:     catalog.PlanPremium,
			services: NoServices(),
			want:     Breakdown{PlanCents: 15900, TotalCents: 15900},
		},
		{
			name:     "essencial with garland two LED panels and delivery",
			plan:     catalog.PlanEssencial,
			upsells:  Upsells{Garland: true, LEDUnits: 2},
			services: ServiceSelection{Kind: ServiceIndividual, Delivery: true},
			want: Breakdown{
				PlanCents:     8900,
				UpsellsCents:  4000 + 2*3500,
				ServicesCents: 4000,
				TotalCents:    8900 + 4000 + 7000 + 4000,
			},
		},
		{
			name:     "premium with table and full bundle",
			plan:     catalog.PlanPremium,
			upsells:  Upsells{Table: true},
			services: ServiceSelection{Kind: ServiceFullBundle},
			want: Breakdown{
				PlanCents:     15900,
				UpsellsCents:  3000,
				ServicesCents: 12000,
				TotalCents:    15900 + 3000 + 12000,
			},
		},
		{
			name:     "self service costs nothing",
			plan:     catalog.PlanEssencial,
			services: ServiceSelection{Kind: ServiceSelfService},
			want:     Breakdown{PlanCents: 8900, TotalCents: 8900},
		},
		{
			name:     "all three individual services",
			plan:     catalog.PlanEssencial,
			services: ServiceSelection{Kind: ServiceIndividual, Delivery: true, Setup: true, Pickup: true},
			want: Breakdown{
				PlanCents:     8900,
				ServicesCents: 12000,
				TotalCents:    8900 + 12000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePricing(cat, tt.plan, tt.upsells, tt.services)
			if err != nil {
				t.Fatalf("ComputePricing() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputePricing() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputePricingUnknownPlan(t *testing.T) {
	cat := catalog.Default()
	_, err := ComputePricing(cat, "DELUXE", Upsells{}, NoServices())
	if !errors.Is(err, ErrUnknownPlan) {
		t.Errorf("ComputePricing() error = %v, want ErrUnknownPlan", err)
	}
}

func TestComputePricingNegativeLEDUnits(t *testing.T) {
	cat := catalog.Default()
	_, err := ComputePricing(cat, catalog.PlanEssencial, Upsells{LEDUnits: -1}, NoServices())
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("ComputePricing() error = %v, want ErrInvalidQuantity", err)
	}
}

func TestUpsellsPriceWithoutPlan(t *testing.T) {
	cat := catalog.Default()
	got, err := UpsellsPrice(cat, Upsells{Garland: true, LEDUnits: 3})
	if err != nil {
		t.Fatalf("UpsellsPrice() error = %v", err)
	}
	want := int64(4000 + 3*3500)
	if got != want {
		t.Errorf("UpsellsPrice() = %v, want %v", got, want)
	}
}

func TestServicesPrice(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name string
		sel  ServiceSelection
		want int64
	}{
		{"none", NoServices(), 0},
		{"self service", ServiceSelection{Kind: ServiceSelfService}, 0},
		{"full bundle", ServiceSelection{Kind: ServiceFullBundle}, 12000},
		{"delivery only", ServiceSelection{Kind: ServiceIndividual, Delivery: true}, 4000},
		{"setup and pickup", ServiceSelection{Kind: ServiceIndividual, Setup: true, Pickup: true}, 8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServicesPrice(cat, tt.sel); got != tt.want {
				t.Errorf("ServicesPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}
