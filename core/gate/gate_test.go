package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neurogrid/storefront/core/gate"
	"github.com/neurogrid/storefront/core/session"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status session.Status
		intent gate.Intent
		want   gate.Decision
	}{
		{"primary signed out", session.Unauthenticated, gate.Intent{Action: gate.HeroPrimary}, gate.Decision{Kind: gate.PromptEmailCapture}},
		{"primary resolving", session.Resolving, gate.Intent{Action: gate.HeroPrimary}, gate.Decision{Kind: gate.PromptEmailCapture}},
		{"primary signed in", session.Authenticated, gate.Intent{Action: gate.HeroPrimary}, gate.Decision{Kind: gate.Proceed, Target: gate.TargetLabs}},
		{"secondary signed out", session.Unauthenticated, gate.Intent{Action: gate.HeroSecondary}, gate.Decision{Kind: gate.PromptAuth}},
		{"secondary signed in", session.Authenticated, gate.Intent{Action: gate.HeroSecondary}, gate.Decision{Kind: gate.Proceed, Target: gate.TargetConsultation}},
		{
			"purchase signed out", session.Unauthenticated,
			gate.Intent{Action: gate.PurchasePackage, PackageID: "starter"},
			gate.Decision{Kind: gate.Reject, PackageID: "starter", Message: gate.MessageLoginToPurchase},
		},
		{
			"purchase signed in", session.Authenticated,
			gate.Intent{Action: gate.PurchasePackage, PackageID: "starter"},
			gate.Decision{Kind: gate.Proceed, Target: gate.TargetCheckout, PackageID: "starter"},
		},
		{"consultation signed out", session.Unauthenticated, gate.Intent{Action: gate.BookConsultation}, gate.Decision{Kind: gate.PromptAuth}},
		{"consultation signed in", session.Authenticated, gate.Intent{Action: gate.BookConsultation}, gate.Decision{Kind: gate.Proceed, Target: gate.TargetConsultationCheckout}},
		{"unknown action", session.Authenticated, gate.Intent{}, gate.Decision{Kind: gate.Reject, Message: gate.MessageUnknownAction}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := gate.Decide(tt.status, tt.intent)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, gate.Decide(tt.status, tt.intent), "decisions are deterministic")
		})
	}
}

func TestPolicy_PromptAuthOnPurchase(t *testing.T) {
	t.Parallel()
	p := gate.Policy{PromptAuthOnPurchase: true}

	got := p.Decide(session.Unauthenticated, gate.Intent{Action: gate.PurchasePackage, PackageID: "enterprise"})
	assert.Equal(t, gate.Decision{Kind: gate.PromptAuth, PackageID: "enterprise"}, got)

	got = p.Decide(session.Authenticated, gate.Intent{Action: gate.PurchasePackage, PackageID: "enterprise"})
	assert.Equal(t, gate.Proceed, got.Kind)
}

func TestPending(t *testing.T) {
	t.Parallel()
	var p gate.Pending

	_, ok := p.Take()
	assert.False(t, ok)

	p.Set(gate.Intent{Action: gate.PurchasePackage, PackageID: "starter"})
	p.Set(gate.Intent{Action: gate.PurchasePackage, PackageID: "professional"})

	got, ok := p.Take()
	assert.True(t, ok)
	assert.Equal(t, "professional", got.PackageID)

	_, ok = p.Take()
	assert.False(t, ok, "take consumes the intent")

	p.Set(gate.Intent{Action: gate.HeroSecondary})
	p.Clear()
	_, ok = p.Take()
	assert.False(t, ok)
}

func TestStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "purchase_package", gate.PurchasePackage.String())
	assert.Equal(t, "prompt_email_capture", gate.PromptEmailCapture.String())
	assert.Equal(t, "labs", gate.TargetLabs.String())
	assert.Equal(t, "none", gate.TargetNone.String())
}
