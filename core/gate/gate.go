// Package gate decides what happens when a visitor triggers a gated action.
//
// Decide is a pure function of session status and intent: it never performs
// I/O and the same inputs always produce the same Decision. Callers execute
// the decision (navigate, open a prompt, start checkout, show a message).
package gate

import "github.com/neurogrid/storefront/core/session"

// Action is a user intent that depends on session state.
type Action int

const (
	// HeroPrimary is the "I want to learn" call to action.
	HeroPrimary Action = iota + 1
	// HeroSecondary is the "Build for me" call to action.
	HeroSecondary
	// PurchasePackage buys a lab package; Intent.PackageID names it.
	PurchasePackage
	// BookConsultation pays for a consultation session.
	BookConsultation
)

func (a Action) String() string {
	switch a {
	case HeroPrimary:
		return "hero_primary"
	case HeroSecondary:
		return "hero_secondary"
	case PurchasePackage:
		return "purchase_package"
	case BookConsultation:
		return "book_consultation"
	default:
		return "unknown"
	}
}

// Intent is an action plus its argument.
type Intent struct {
	Action    Action
	PackageID string
}

// Kind classifies a Decision.
type Kind int

const (
	Proceed Kind = iota + 1
	PromptEmailCapture
	PromptAuth
	Reject
)

func (k Kind) String() string {
	switch k {
	case Proceed:
		return "proceed"
	case PromptEmailCapture:
		return "prompt_email_capture"
	case PromptAuth:
		return "prompt_auth"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Target is where a Proceed decision leads.
type Target int

const (
	TargetNone Target = iota
	TargetLabs
	TargetConsultation
	TargetCheckout
	TargetConsultationCheckout
)

func (t Target) String() string {
	switch t {
	case TargetLabs:
		return "labs"
	case TargetConsultation:
		return "consultation"
	case TargetCheckout:
		return "checkout"
	case TargetConsultationCheckout:
		return "consultation_checkout"
	default:
		return "none"
	}
}

// Messages shown for rejected intents.
const (
	MessageLoginToPurchase = "Please log in to purchase a package."
	MessageUnknownAction   = "This action is not available."
)

// Decision is the outcome of Decide.
type Decision struct {
	Kind      Kind
	Target    Target // set when Kind == Proceed
	PackageID string // set for checkout targets and carried on prompts
	Message   string // set when Kind == Reject
}

// Policy tunes decisions that are product choices rather than fixed rules.
type Policy struct {
	// PromptAuthOnPurchase opens the auth prompt for an unauthenticated
	// purchase instead of rejecting it with a login message.
	PromptAuthOnPurchase bool
}

// DefaultPolicy rejects unauthenticated purchases with a message.
var DefaultPolicy = Policy{}

// Decide applies DefaultPolicy.
func Decide(status session.Status, intent Intent) Decision {
	return DefaultPolicy.Decide(status, intent)
}

// Decide maps session status and intent to a decision. Only Authenticated
// counts as signed in; Resolving is treated like Unauthenticated.
func (p Policy) Decide(status session.Status, intent Intent) Decision {
	authed := status == session.Authenticated

	switch intent.Action {
	case HeroPrimary:
		if authed {
			return Decision{Kind: Proceed, Target: TargetLabs}
		}
		return Decision{Kind: PromptEmailCapture}

	case HeroSecondary:
		if authed {
			return Decision{Kind: Proceed, Target: TargetConsultation}
		}
		return Decision{Kind: PromptAuth}

	case PurchasePackage:
		if authed {
			return Decision{Kind: Proceed, Target: TargetCheckout, PackageID: intent.PackageID}
		}
		if p.PromptAuthOnPurchase {
			return Decision{Kind: PromptAuth, PackageID: intent.PackageID}
		}
		return Decision{Kind: Reject, PackageID: intent.PackageID, Message: MessageLoginToPurchase}

	case BookConsultation:
		if authed {
			return Decision{Kind: Proceed, Target: TargetConsultationCheckout}
		}
		return Decision{Kind: PromptAuth}

	default:
		return Decision{Kind: Reject, Message: MessageUnknownAction}
	}
}
