// Package checkout starts paid checkouts for lab packages and consultations.
//
// The Initiator checks the session and the catalog before touching the
// network, so an unauthenticated visitor or an unknown package never
// produces a request. A successful call yields a Redirect to the payment
// provider's hosted page:
//
//	init := checkout.New(mgr, client)
//	r, err := init.StartCheckout(ctx, "starter")
//	if errors.Is(err, checkout.ErrNotAuthenticated) {
//		// ask the visitor to log in
//	}
//	fmt.Println(r.URL)
//
// Only one checkout may be in flight per Initiator; a second call while the
// first is pending fails with ErrInProgress.
package checkout
