// Package session owns the client-side authentication state of a storefront install.
//
// A Manager derives the current user from a persisted bearer token and exposes
// the only operations allowed to change it: Bootstrap, Login, Register and
// Logout. Consumers read state through Snapshot or Subscribe and never touch
// the token store or the request credential directly.
//
// # States
//
//	Unauthenticated -> Resolving -> Authenticated
//	                            \-> Unauthenticated (token cleared)
//	Authenticated   -> Unauthenticated (Logout)
//
// A Snapshot carries a User if and only if its Status is Authenticated, and a
// Snapshot without a token is always Unauthenticated.
//
// # Stale results
//
// Every resolution is tagged with an epoch taken when it starts. Logout and
// any newer resolution advance the epoch, and a completion whose epoch is no
// longer current is dropped without touching state or the token store. The
// request itself is not aborted.
//
//	mgr, err := session.New(tokenstore.NewFileStore(path), apiclient.New(baseURL))
//	if err != nil {
//		return err
//	}
//	snap := mgr.Bootstrap(ctx)
//	if !snap.IsAuthenticated() {
//		snap, err = mgr.Login(ctx, email, password)
//	}
package session
