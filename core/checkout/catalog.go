package checkout

import "slices"

// Package ids.
const (
	Starter      = "starter"
	Professional = "professional"
	Enterprise   = "enterprise"
	Consultation = "consultation"
)

// Package is an item that can be bought through checkout.
type Package struct {
	ID       string
	Name     string
	Price    int // whole currency units
	Currency string
	Features []string
}

var packages = []Package{
	{
		ID:       Starter,
		Name:     "Neural Starter Package",
		Price:    99,
		Currency: "USD",
		Features: []string{
			"Basic AI Automation Course",
			"5 Neural Network Templates",
			"Community Access",
			"Email Support",
		},
	},
	{
		ID:       Professional,
		Name:     "Neural Professional Package",
		Price:    299,
		Currency: "USD",
		Features: []string{
			"Complete AI Automation Suite",
			"20+ Neural Network Templates",
			"1-on-1 Mentorship (2 sessions)",
			"Priority Support",
			"Advanced Workshops",
		},
	},
	{
		ID:       Enterprise,
		Name:     "Neural Enterprise Package",
		Price:    599,
		Currency: "USD",
		Features: []string{
			"Full Neural Labs Access",
			"Unlimited Templates & Resources",
			"Weekly 1-on-1 Mentorship",
			"Custom AI Development",
			"24/7 Priority Support",
			"Enterprise Integration",
		},
	},
}

var consultation = Package{
	ID:       Consultation,
	Name:     "AI Consultation Session",
	Price:    150,
	Currency: "USD",
}

// Packages returns the lab packages in display order.
// The returned slice is a copy.
func Packages() []Package {
	out := make([]Package, len(packages))
	for i, p := range packages {
		p.Features = slices.Clone(p.Features)
		out[i] = p
	}
	return out
}

// Lookup returns the lab package with the given id.
func Lookup(id string) (Package, bool) {
	i := slices.IndexFunc(packages, func(p Package) bool { return p.ID == id })
	if i < 0 {
		return Package{}, false
	}
	p := packages[i]
	p.Features = slices.Clone(p.Features)
	return p, true
}

// ConsultationOffer returns the consultation item.
func ConsultationOffer() Package {
	return consultation
}
